package models

// Fixed form taxonomies carried over from operations. Cost categories and
// their sub-categories mirror the routes and suppliers the fleet actually
// uses; free-text entry still goes through these lists in the UI.

// Clients is the known client list for trip capture.
var Clients = []string{
	"Teralco", "SPF", "Deap Catch", "DS Healthcare", "HFR", "Aspen", "Dp World", "FX Logistics",
	"Feedmix", "Etg", "National foods", "Mega Market", "Crystal Candy", "Trade Clear Logistics",
	"Steainweg", "Agrouth", "Emmands", "Falcon Gate", "FreightCo", "Tarondale", "Makandi",
	"FWZCargo", "Kroots", "Crake Valley", "Cains", "Big Dutcheman", "Jacobs", "Jacksons",
	"Pacibrite", "Vector", "Du-roi", "Sunside Seedlings", "Massmart", "Dacher (Pty) Ltd.",
	"Shoprite", "Lesaffre", "Westfalia", "Everfresh", "Rezende Retail", "Rezende Retail Vendor",
	"Rezende Vendor", "Bulawayo Retail", "Bulawayo Retail Vendor", "Bulawayo Vendor",
}

// Drivers is the active driver roster.
var Drivers = []string{
	"Enock Mukonyerwa", "Jonathan Bepete", "Lovemore Qochiwe", "Peter Farai", "Phillimon Kwarire",
	"Taurayi Vherenaisi", "Adrian Moyo", "Canaan Chipfurutse", "Doctor Kondwani", "Biggie Mugwa",
	"Luckson Tanyanyiwa", "Wellington Musumbu", "Decide Murahwa",
}

// FleetNumbers is the current vehicle fleet.
var FleetNumbers = []string{
	"4H", "6H", "UD", "29H", "30H", "21H", "22H", "23H", "24H", "26H", "28H", "31H", "32H", "33H",
}

// DelayReasonTypes is the fixed delay taxonomy.
var DelayReasonTypes = []string{
	"border_delays", "breakdown", "customer_not_ready", "paperwork_issues",
	"weather_conditions", "traffic", "other",
}

// ContactMethods are the ways follow-ups are made.
var ContactMethods = []string{"call", "email", "whatsapp", "in_person", "sms"}

// CostCategories maps each cost category to its fixed sub-category list.
var CostCategories = map[string][]string{
	"Border Costs": {
		"Beitbridge Border Fee", "Gate Pass", "Coupon", "Carbon Tax Horse", "CVG Horse", "CVG Trailer",
		"Insurance (1 Month Horse)", "Insurance (3 Months Trailer)", "Insurance (2 Months Trailer)",
		"Insurance (1 Month Trailer)", "Carbon Tax (3 Months Horse)", "Carbon Tax (2 Months Horse)",
		"Carbon Tax (1 Month Horse)", "Carbon Tax (3 Months Trailer)", "Carbon Tax (2 Months Trailer)",
		"Carbon Tax (1 Month Trailer)", "Road Access", "Bridge Fee", "Road Toll Fee", "Counseling Leavy",
		"Transit Permit Horse", "Transit Permit Trailer", "National Road Safety Fund Horse",
		"National Road Safety Fund Trailer", "Electronic Seal", "EME Permit", "Zim Clearing",
		"Zim Supervision", "SA Clearing", "Runner Fee Beitbridge", "Runner Fee Zambia Kazungula",
		"Runner Fee Chirundu",
	},
	"Parking": {
		"Bubi", "Lunde", "Mvuma", "Gweru", "Kadoma", "Chegutu", "Norton", "Harare", "Ruwa",
		"Marondera", "Rusape", "Mutare", "Nyanga", "Bindura", "Shamva", "Centenary", "Guruve",
		"Karoi", "Chinhoyi", "Kariba", "Hwange", "Victoria Falls", "Bulawayo", "Gwanda",
		"Beitbridge", "Masvingo", "Zvishavane", "Shurugwi", "Kwekwe",
	},
	"Diesel": {
		"ACM Petroleum Chirundu - Reefer", "ACM Petroleum Chirundu - Horse", "RAM Petroleum Harare - Reefer",
		"RAM Petroleum Harare - Horse", "Engen Beitbridge - Reefer", "Engen Beitbridge - Horse",
		"Shell Mutare - Reefer", "Shell Mutare - Horse", "BP Bulawayo - Reefer", "BP Bulawayo - Horse",
		"Total Gweru - Reefer", "Total Gweru - Horse", "Puma Masvingo - Reefer", "Puma Masvingo - Horse",
		"Zuva Petroleum Kadoma - Reefer", "Zuva Petroleum Kadoma - Horse", "Mobil Chinhoyi - Reefer",
		"Mobil Chinhoyi - Horse", "Caltex Kwekwe - Reefer", "Caltex Kwekwe - Horse",
	},
	"Non-Value-Added Costs": {
		"Fines", "Penalties", "Passport Stamping", "Push Documents", "Jump Queue", "Dismiss Inspection",
		"Parcels", "Labour",
	},
	"Trip Allowances": {"Food", "Airtime", "Taxi"},
	"Tolls": {
		"Tolls BB to JHB", "Tolls Cape Town to JHB", "Tolls JHB to CPT", "Tolls Mutare to BB",
		"Tolls JHB to Martinsdrift", "Tolls BB to Harare", "Tolls Zambia",
	},
	"System Costs": {
		"Repair & Maintenance per KM", "Tyre Cost per KM", "GIT Insurance", "Short-Term Insurance",
		"Tracking Cost", "Fleet Management System", "Licensing", "VID / Roadworthy", "Wages", "Depreciation",
	},
}
