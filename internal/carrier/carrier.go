// Package carrier implements the shipping-carrier client the shipping
// tracker loader polls: a UPS-style JSON tracking protocol over
// plain net/http, with bounded retries and the Activity-as-object-or-array
// polymorphism the wire format exhibits.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	requestOption      = "1"
	customerContext    = "Storiqa"
	deliveredStatus    = "D"
	defaultTimeout     = 5 * time.Second
	defaultMaxRetries  = 3
	defaultRetryBackoff = 500 * time.Millisecond
)

// Client is the subset of carrier behavior the shipping tracker loader
// needs — abstracted so loader tests can inject a fake.
type Client interface {
	DeliveryStatus(ctx context.Context, trackID string) (delivered bool, err error)
}

// UPSClient implements Client against the UPS tracking API described in
// a JSON POST carrying a security token and inquiry number, with a
// response whose Package.Activity may be a single object or an array.
type UPSClient struct {
	httpClient          *http.Client
	url                 string
	accessLicenseNumber string
	maxRetries          int
	retryLimiter        *rate.Limiter
}

// NewUPSClient builds a UPSClient against url, authenticating with
// accessLicenseNumber. Retries are spaced by a rate.Limiter instead of a
// bare sleep so concurrent callers from the same loader tick share one
// backoff schedule.
func NewUPSClient(url, accessLicenseNumber string) *UPSClient {
	return &UPSClient{
		httpClient:          &http.Client{Timeout: defaultTimeout},
		url:                 url,
		accessLicenseNumber: accessLicenseNumber,
		maxRetries:          defaultMaxRetries,
		retryLimiter:        rate.NewLimiter(rate.Every(defaultRetryBackoff), 1),
	}
}

// upsRequest is the wire request body; field names match the
// carrier's PascalCase JSON exactly, not Go convention.
type upsRequest struct {
	UPSSecurity  upsSecurity  `json:"UPSSecurity"`
	TrackRequest trackRequest `json:"TrackRequest"`
}

type upsSecurity struct {
	ServiceAccessToken serviceAccessToken `json:"ServiceAccessToken"`
}

type serviceAccessToken struct {
	AccessLicenseNumber string `json:"AccessLicenseNumber"`
}

type trackRequest struct {
	Request       request `json:"Request"`
	InquiryNumber string  `json:"InquiryNumber"`
}

type request struct {
	RequestOption        string               `json:"RequestOption"`
	TransactionReference transactionReference `json:"TransactionReference"`
}

type transactionReference struct {
	CustomerContext string `json:"CustomerContext"`
}

// upsResponse is the wire response. Fault, when present, means the
// tracking request itself failed for this InquiryNumber.
type upsResponse struct {
	Fault         *fault         `json:"Fault"`
	TrackResponse *trackResponse `json:"TrackResponse"`
}

type fault struct {
	FaultCode   string `json:"faultcode"`
	FaultString string `json:"faultstring"`
}

type trackResponse struct {
	Shipment shipment `json:"Shipment"`
}

type shipment struct {
	Package *activityPackage `json:"Package"`
}

// activityPackage holds Activity, which UPS serializes as a single JSON
// object for one activity or an array for several. activityList's custom
// UnmarshalJSON normalizes both shapes to a slice at the boundary.
type activityPackage struct {
	Activity activityList `json:"Activity"`
}

type activityList []activity

type activity struct {
	Status status `json:"Status"`
}

type status struct {
	Type string `json:"Type"`
}

// UnmarshalJSON accepts Activity as either a bare object or an array of
// objects, normalizing to []activity either way.
func (a *activityList) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*a = nil
		return nil
	}
	if data[0] == '[' {
		var list []activity
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*a = list
		return nil
	}
	var single activity
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*a = []activity{single}
	return nil
}

// DeliveryStatus asks the carrier for trackID's current status, returning
// true once an activity reports Status.Type == "D" (delivered). A Fault
// in the response is surfaced as an error for this track id; it
// must not abort the caller's batch.
func (c *UPSClient) DeliveryStatus(ctx context.Context, trackID string) (bool, error) {
	body, err := json.Marshal(upsRequest{
		UPSSecurity: upsSecurity{ServiceAccessToken: serviceAccessToken{AccessLicenseNumber: c.accessLicenseNumber}},
		TrackRequest: trackRequest{
			Request: request{
				RequestOption:        requestOption,
				TransactionReference: transactionReference{CustomerContext: customerContext},
			},
			InquiryNumber: trackID,
		},
	})
	if err != nil {
		return false, fmt.Errorf("carrier: encoding request for %s: %w", trackID, err)
	}

	var resp upsResponse
	if err := c.postWithRetries(ctx, body, &resp); err != nil {
		return false, fmt.Errorf("carrier: tracking %s: %w", trackID, err)
	}

	if resp.Fault != nil {
		return false, fmt.Errorf("carrier: fault tracking %s: %s (%s)", trackID, resp.Fault.FaultString, resp.Fault.FaultCode)
	}

	if resp.TrackResponse == nil || resp.TrackResponse.Shipment.Package == nil {
		return false, nil
	}
	for _, act := range resp.TrackResponse.Shipment.Package.Activity {
		if act.Status.Type == deliveredStatus {
			return true, nil
		}
	}
	return false, nil
}

// postWithRetries POSTs body to c.url, retrying up to c.maxRetries times
// on transport or 5xx failures, spaced by retryLimiter.
func (c *UPSClient) postWithRetries(ctx context.Context, body []byte, out *upsResponse) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := c.retryLimiter.Wait(ctx); err != nil {
				return lastErr
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		decodeErr := json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("carrier returned status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("carrier returned status %d", resp.StatusCode)
		}
		if decodeErr != nil {
			return fmt.Errorf("decoding carrier response: %w", decodeErr)
		}
		return nil
	}
	return lastErr
}
