// Command policyctl validates policy documents locally and pushes them to a
// running engine. Validation never touches the network; reload POSTs the raw
// document to the admin API and prints the published version.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"intent-routing-engine/internal/policy"
)

func main() {
	var (
		validatePath = flag.String("validate", "", "validate a policy document file and exit")
		reloadPath   = flag.String("reload", "", "push a policy document file to a running engine")
		serverURL    = flag.String("server", "http://localhost:8080", "engine base URL for -reload")
	)
	flag.Parse()

	switch {
	case *validatePath != "":
		os.Exit(runValidate(*validatePath))
	case *reloadPath != "":
		os.Exit(runReload(*reloadPath, *serverURL))
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runValidate(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		return 1
	}

	doc, err := policy.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", path, err)
		return 1
	}

	if verrs := policy.Validate(doc); len(verrs) > 0 {
		for _, ve := range verrs {
			fmt.Fprintf(os.Stderr, "invalid: %s: %s\n", ve.Invariant, ve.Detail)
		}
		return 1
	}

	fmt.Printf("%s: valid (version %s)\n", path, doc.Version)
	return 0
}

func runReload(path, server string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		return 1
	}

	url := strings.TrimRight(server, "/") + "/api/v1/policy/reload"
	client := &http.Client{Timeout: 15 * time.Second}

	resp, err := client.Post(url, "application/yaml", bytes.NewReader(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "POST %s: %v\n", url, err)
		return 1
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read response: %v\n", err)
		return 1
	}

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "reload rejected (%d): %s\n", resp.StatusCode, summarize(body))
		return 1
	}

	version, err := publishedVersion(body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unexpected response: %v\n", err)
		return 1
	}

	fmt.Printf("policy %s published\n", version)
	return 0
}

func publishedVersion(body []byte) (string, error) {
	var envelope struct {
		Data struct {
			Version string `json:"version"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", err
	}
	if envelope.Data.Version == "" {
		return "", errors.New("no version in response")
	}
	return envelope.Data.Version, nil
}

func summarize(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Errors  any    `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Message == "" {
		return strings.TrimSpace(string(body))
	}
	if envelope.Errors != nil {
		detail, _ := json.Marshal(envelope.Errors)
		return fmt.Sprintf("%s: %s", envelope.Message, detail)
	}
	return envelope.Message
}
