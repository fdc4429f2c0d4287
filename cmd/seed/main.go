// Command seed populates a running fleetops server with sample trips,
// diesel records and missed loads through the HTTP API. Intended for demo
// and local development environments.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/heinrichnel/fleetops/internal/models"
)

var authToken string

func authorizedPost(url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func login(apiURL string) error {
	username := os.Getenv("SEED_USERNAME")
	password := os.Getenv("SEED_PASSWORD")
	if username == "" {
		return nil
	}
	body, _ := json.Marshal(models.LoginRequest{Username: username, Password: password})
	resp, err := authorizedPost(apiURL+"/api/auth/login", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status %d", resp.StatusCode)
	}
	var loginResp models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return err
	}
	authToken = loginResp.Token
	return nil
}

var routes = []string{
	"JHB - Harare", "Harare - Beitbridge", "Mutare - JHB",
	"Durban - Lusaka", "JHB - Blantyre", "Harare - Lusaka",
}

func sampleTrip(i int) models.Trip {
	currency := models.CurrencyZAR
	revenue := 45000 + rand.Float64()*80000
	if i%3 == 0 {
		currency = models.CurrencyUSD
		revenue = 2500 + rand.Float64()*4500
	}
	clientType := models.ClientExternal
	if i%4 == 0 {
		clientType = models.ClientInternal
	}
	start := time.Now().AddDate(0, 0, -rand.Intn(60))
	distance := 800 + rand.Float64()*1400
	return models.Trip{
		FleetNumber:     models.FleetNumbers[rand.Intn(len(models.FleetNumbers))],
		DriverName:      models.Drivers[rand.Intn(len(models.Drivers))],
		ClientName:      models.Clients[rand.Intn(len(models.Clients))],
		ClientType:      clientType,
		Route:           routes[rand.Intn(len(routes))],
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, 2+rand.Intn(5)),
		BaseRevenue:     revenue,
		RevenueCurrency: currency,
		DistanceKm:      &distance,
	}
}

func sampleDiesel() models.DieselConsumptionRecord {
	stations := []string{"RAM Petroleum Harare", "Engen Beitbridge", "Shell Mutare", "BP Bulawayo"}
	km := 80000 + rand.Float64()*90000
	prev := km - (1000 + rand.Float64()*800)
	litres := 350 + rand.Float64()*200
	costPerLitre := 18 + rand.Float64()*2
	return models.DieselConsumptionRecord{
		FleetNumber:       models.FleetNumbers[rand.Intn(len(models.FleetNumbers))],
		Date:              time.Now().AddDate(0, 0, -rand.Intn(30)),
		KmReading:         km,
		PreviousKmReading: &prev,
		LitresFilled:      litres,
		CostPerLitre:      costPerLitre,
		TotalCost:         litres * costPerLitre,
		FuelStation:       stations[rand.Intn(len(stations))],
		DriverName:        models.Drivers[rand.Intn(len(models.Drivers))],
	}
}

func sampleMissedLoad() models.MissedLoad {
	reasons := []models.MissedLoadReason{
		models.MissedNoVehicle, models.MissedLateResponse,
		models.MissedMechanicalIssue, models.MissedRateDisagreement,
	}
	request := time.Now().AddDate(0, 0, -rand.Intn(45))
	return models.MissedLoad{
		CustomerName:          models.Clients[rand.Intn(len(models.Clients))],
		LoadRequestDate:       request,
		RequestedPickupDate:   request.AddDate(0, 0, 2),
		RequestedDeliveryDate: request.AddDate(0, 0, 5),
		Route:                 routes[rand.Intn(len(routes))],
		EstimatedRevenue:      30000 + rand.Float64()*60000,
		Currency:              models.CurrencyZAR,
		Reason:                reasons[rand.Intn(len(reasons))],
		RecordedBy:            "Seed Script",
		Impact:                models.ImpactMedium,
	}
}

func post(apiURL, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := authorizedPost(apiURL+path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}
	return nil
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	count := 20
	if v := os.Getenv("SEED_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			count = n
		}
	}

	if err := login(apiURL); err != nil {
		log.WithError(err).Fatal("seed login failed")
	}

	for i := 0; i < count; i++ {
		if err := post(apiURL, "/api/trips", sampleTrip(i)); err != nil {
			log.WithError(err).Error("failed to seed trip")
		}
	}
	for i := 0; i < count; i++ {
		if err := post(apiURL, "/api/diesel", sampleDiesel()); err != nil {
			log.WithError(err).Error("failed to seed diesel record")
		}
	}
	for i := 0; i < count/4; i++ {
		if err := post(apiURL, "/api/missed-loads", sampleMissedLoad()); err != nil {
			log.WithError(err).Error("failed to seed missed load")
		}
	}
	log.WithFields(log.Fields{
		"trips":        count,
		"diesel":       count,
		"missed_loads": count / 4,
	}).Info("seeding complete")
}
