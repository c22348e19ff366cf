package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

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
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // No timeout: generation calls are slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func uploadFiles(token string, paths map[string]string) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		part, err := writer.CreateFormFile(field, filepath.Base(path))
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, nil, err
		}
		f.Close()
	}
	writer.Close()

	req, err := http.NewRequest("POST", baseURL+"/workspace/v1/files", &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	if len(os.Args) < 3 {
		color.Red("Usage: go run scripts/test_memo_api.go <cim.pdf> <template.pdf>")
		os.Exit(1)
	}
	cimPath, templatePath := os.Args[1], os.Args[2]

	color.Cyan("🚀 Starting Memo Pipeline API Test\n")

	// 1. Create workspace
	color.Yellow("\n1. Create Workspace")
	resp, body, err := sendRequest("POST", "/workspace/v1", "", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var createResp map[string]interface{}
	json.Unmarshal(body, &createResp)
	prettyPrint(createResp)

	var token string
	if data, ok := createResp["data"].(map[string]interface{}); ok {
		token, _ = data["session_token"].(string)
	}
	if token == "" {
		color.Red("No session token in response")
		os.Exit(1)
	}

	// 2. Upload CIM document + summary template
	color.Yellow("\n2. Upload Files")
	resp, body, err = uploadFiles(token, map[string]string{
		"document": cimPath,
		"template": templatePath,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var uploadResp map[string]interface{}
	json.Unmarshal(body, &uploadResp)
	prettyPrint(uploadResp)

	// 3. Generate summary
	color.Yellow("\n3. Generate Summary (this can take a while)")
	resp, body, err = sendRequest("POST", "/summary/v1/generate", token, map[string]interface{}{
		"model_option": "gemini-2.5-flash",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var summaryResp map[string]interface{}
	json.Unmarshal(body, &summaryResp)
	prettyPrint(summaryResp)

	// 4. Editor chat turn
	color.Yellow("\n4. Editor Chat: request an edit")
	resp, body, err = sendRequest("POST", "/chat/v1/submit", token, map[string]interface{}{
		"function":     "editor",
		"prompt":       "Shorten the executive summary to three bullet points.",
		"model_option": "gemini-2.5-flash",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var chatResp map[string]interface{}
	json.Unmarshal(body, &chatResp)
	prettyPrint(chatResp)

	// 5. Chat history
	color.Yellow("\n5. Chat History")
	resp, body, err = sendRequest("GET", "/chat/v1/history?function=editor", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var historyResp map[string]interface{}
	json.Unmarshal(body, &historyResp)
	prettyPrint(historyResp)

	// 6. Export summary to plaintext + docx
	color.Yellow("\n6. Export Summary")
	resp, body, err = sendRequest("POST", "/export/v1", token, map[string]interface{}{
		"artifact": "summary",
		"formats":  []string{"plaintext", "docx"},
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var exportResp map[string]interface{}
	json.Unmarshal(body, &exportResp)
	prettyPrint(exportResp)

	color.Cyan("\n✅ Memo pipeline smoke test complete")
}
