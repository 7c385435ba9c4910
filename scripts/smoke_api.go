package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const sessionHeader = "X-Session-Token"

func baseURL() string {
	if v := os.Getenv("SMOKE_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8501/api"
}

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, map[string]interface{}, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL()+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(sessionHeader, token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	_ = json.Unmarshal(raw, &parsed)
	return resp, parsed, nil
}

func step(title, method, url, token string, body interface{}) map[string]interface{} {
	color.Yellow("\n%s", title)
	resp, parsed, err := sendRequest(method, url, token, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode >= 300 {
		color.Red("Status: %s", resp.Status)
	} else {
		color.Green("Status: %s", resp.Status)
	}
	prettyPrint(parsed)
	return parsed
}

func main() {
	color.Cyan("🚀 Starting Summarizer API smoke test\n")

	created := step("1. Create session", "POST", "/session/v1", "", nil)
	data, _ := created["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	if token == "" {
		color.Red("No session token returned")
		os.Exit(1)
	}

	step("2. Translate before summarizing (expect 409)", "POST", "/summarizer/v1/translate", token, nil)
	step("3. Summarize empty input (expect skipped)", "POST", "/summarizer/v1/summarize", token, map[string]interface{}{"mode": "text", "text": ""})
	step("4. Summarize", "POST", "/summarizer/v1/summarize", token, map[string]interface{}{
		"mode":       "text",
		"text":       "The quick brown fox. It jumps over the lazy dog.",
		"min_length": 10,
		"max_length": 50,
	})
	step("5. Translate to Urdu", "POST", "/summarizer/v1/translate", token, nil)
	step("6. Usage stats", "GET", "/stats/v1", "", nil)
	step("7. Reset session", "DELETE", "/session/v1", token, nil)

	color.Cyan("\n✅ Smoke test finished")
}
