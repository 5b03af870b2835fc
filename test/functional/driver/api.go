package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type APIDriver struct {
	baseURL string
	client  *http.Client
}

func NewAPIDriver(baseURL string) *APIDriver {
	return &APIDriver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *APIDriver) Healthz() (*http.Response, error) {
	return d.client.Get(d.baseURL + "/healthz")
}

func (d *APIDriver) Table(entity string, limit int) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/entities/%s/table?limit=%d", d.baseURL, url.PathEscape(entity), limit))
}

func (d *APIDriver) ListRecords(entity string, query url.Values) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/entities/%s/records?%s", d.baseURL, url.PathEscape(entity), query.Encode()))
}

func (d *APIDriver) GetRecord(entity, id string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/entities/%s/records/%s", d.baseURL, url.PathEscape(entity), url.PathEscape(id)))
}

func (d *APIDriver) DeleteRecord(entity, id string) (*http.Response, error) {
	return d.send(http.MethodDelete, fmt.Sprintf("/v1/entities/%s/records/%s", url.PathEscape(entity), url.PathEscape(id)), nil)
}

func (d *APIDriver) Export(entity string) (*http.Response, error) {
	return d.client.Get(fmt.Sprintf("%s/v1/entities/%s/export.csv", d.baseURL, url.PathEscape(entity)))
}

// OpenDialog opens a create dialog when recordID is empty.
func (d *APIDriver) OpenDialog(entity, recordID string) (*http.Response, error) {
	return d.send(http.MethodPost, fmt.Sprintf("/v1/entities/%s/dialogs", url.PathEscape(entity)), map[string]any{"record_id": recordID})
}

func (d *APIDriver) ChangeDialog(id string, values map[string]any) (*http.Response, error) {
	return d.send(http.MethodPatch, "/v1/dialogs/"+url.PathEscape(id), map[string]any{"values": values})
}

func (d *APIDriver) SubmitDialog(id string) (*http.Response, error) {
	return d.send(http.MethodPost, "/v1/dialogs/"+url.PathEscape(id)+"/submit", nil)
}

func (d *APIDriver) CloseDialog(id string) (*http.Response, error) {
	return d.send(http.MethodPost, "/v1/dialogs/"+url.PathEscape(id)+"/close", nil)
}

func (d *APIDriver) ResolvePage(path string) (*http.Response, error) {
	client := *d.client
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return client.Get(d.baseURL + "/v1/pages" + path)
}

func (d *APIDriver) send(method, path string, body any) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, d.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return d.client.Do(req)
}
