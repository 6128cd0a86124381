package patientservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент справочника пациентов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента справочника пациентов
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetPatient получает пациента по ID
func (c *Client) GetPatient(ctx context.Context, patientID string) (*Patient, error) {
	endpoint := fmt.Sprintf("%s/internal/patients/%s", c.baseURL, url.PathEscape(patientID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrPatientNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var patient Patient
	if err := json.NewDecoder(resp.Body).Decode(&patient); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &patient, nil
}

// GetContact возвращает контакт пациента для уведомлений
func (c *Client) GetContact(ctx context.Context, patientID string) (string, error) {
	patient, err := c.GetPatient(ctx, patientID)
	if err != nil {
		c.log.Warn("GetContact: patient_id=%s: %v", patientID, err)
		return "", err
	}

	contact := patient.Contact()
	if contact == "" {
		return "", fmt.Errorf("%w: patient_id=%s", ErrNoContact, patientID)
	}

	c.log.Info("GetContact: resolved contact for patient_id=%s", patientID)
	return contact, nil
}
