// Command client submits workflow runs to a hermes server from local
// YAML configuration files and reports the outcome.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"hermes/internal/workflow"
	"hermes/pkg/logger"
)

func main() {
	var (
		serverURL    = flag.String("server", "http://localhost:8000", "hermes server base URL")
		jobPath      = flag.String("job", "", "path to job config YAML")
		agentPath    = flag.String("agent", "", "path to agent config YAML")
		templatePath = flag.String("template", "", "path to template config YAML (optional)")
		outPath      = flag.String("out", "", "file to save the raw response JSON (optional)")
		timeout      = flag.Duration("timeout", 10*time.Minute, "request timeout")
	)
	flag.Parse()

	if err := logger.Init("info", "development"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()
	log := logger.Get()

	if *jobPath == "" || *agentPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	req, err := buildRequest(*jobPath, *agentPath, *templatePath)
	if err != nil {
		log.Fatalf("Failed to build request: %v", err)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		log.Fatalf("Failed to encode request: %v", err)
	}
	log.Infof("Submitting workflow %q (%s payload) to %s",
		req.JobConfig.JobName, humanize.Bytes(uint64(len(payload))), *serverURL)

	start := time.Now()
	client := &http.Client{Timeout: *timeout}
	httpResp, err := client.Post(*serverURL+"/workflow/run", "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer httpResp.Body.Close()

	var raw bytes.Buffer
	var resp workflow.Response
	if err := json.NewDecoder(io.TeeReader(httpResp.Body, &raw)).Decode(&resp); err != nil {
		log.Fatalf("Failed to decode response (HTTP %d): %v", httpResp.StatusCode, err)
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, raw.Bytes(), 0o644); err != nil {
			log.Errorf("Failed to save response: %v", err)
		} else {
			log.Infof("Response saved to %s", *outPath)
		}
	}

	printSummary(&resp, time.Since(start))

	if resp.Status != workflow.StatusCompleted {
		os.Exit(1)
	}
}

// buildRequest loads the YAML configs and assembles the JSON payload the
// server expects.
func buildRequest(jobPath, agentPath, templatePath string) (*workflow.Request, error) {
	req := &workflow.Request{}

	if err := loadYAML(jobPath, &req.JobConfig); err != nil {
		return nil, err
	}

	// Agent configs are YAML on disk but travel as JSON
	var agentCfg map[string]any
	if err := loadYAML(agentPath, &agentCfg); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(agentCfg)
	if err != nil {
		return nil, fmt.Errorf("encode agent config: %w", err)
	}
	req.AgentConfig = raw

	if templatePath != "" {
		if err := loadYAML(templatePath, &req.TemplateConfig); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func loadYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func printSummary(resp *workflow.Response, elapsed time.Duration) {
	fmt.Println("============================================================")
	fmt.Println("Workflow Result")
	fmt.Println("============================================================")
	fmt.Printf("Status:          %s\n", resp.Status)
	fmt.Printf("Elapsed:         %s\n", elapsed.Round(time.Millisecond))
	if resp.RunID != "" {
		fmt.Printf("Run ID:          %s\n", resp.RunID)
	}
	fmt.Printf("Events:          %d\n", resp.EventsGenerated)
	fmt.Printf("Response length: %s\n", humanize.Comma(int64(resp.ResponseLength)))
	if resp.OutputFile != "" {
		fmt.Printf("Report:          %s\n", resp.OutputFile)
	}
	if resp.JSONFile != "" {
		fmt.Printf("JSON:            %s\n", resp.JSONFile)
	}
	for _, w := range resp.Warnings {
		fmt.Printf("Warning:         %s\n", w)
	}
	if resp.ErrorMessage != "" {
		fmt.Printf("Error:           %s\n", resp.ErrorMessage)
	}
}
