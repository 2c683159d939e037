package gist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"hifi-bench/pkg/models"
)

// Client publishes grading runs to a GitHub gist so A/B results from a
// handheld can be reviewed from anywhere.
type Client struct {
	token string
}

func NewClient(token string) *Client {
	return &Client{token: token}
}

// PushComparison updates the gist with the structured comparison and the
// rendered (uncolored) report side by side.
func (c *Client) PushComparison(gistID string, cmp models.Comparison, report string) error {
	content, _ := json.MarshalIndent(cmp, "", "  ")
	body := map[string]interface{}{
		"files": map[string]map[string]string{
			"comparison.json": {"content": string(content)},
			"report.txt":      {"content": report},
		},
	}
	data, _ := json.Marshal(body)

	url := fmt.Sprintf("https://api.github.com/gists/%s", gistID)
	req, _ := http.NewRequest("PATCH", url, bytes.NewReader(data))
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("gist patch failed: %s", resp.Status)
	}
	return nil
}
