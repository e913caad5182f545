package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/openai/openai-go"
	"github.com/theimaginaryfoundation/surveyprompt/survey"
)

// batchRequest is one line of an OpenAI Batch API input file. The tool only
// renders the file; uploading it (and paying for it) stays with the caller.
type batchRequest struct {
	CustomID string                         `json:"custom_id"`
	Method   string                         `json:"method"`
	URL      string                         `json:"url"`
	Body     openai.ChatCompletionNewParams `json:"body"`
}

// writeBatchRequests renders every prompt record as a chat-completion batch
// request line, keyed by "<respondent>-<question>" so completions can be
// joined back to ground truth. Returns the number of lines written.
func writeBatchRequests(path string, records []survey.PromptRecord, model string, overwrite bool) (int, error) {
	if path == "" {
		return 0, errors.New("writeBatchRequests: path is empty")
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return 0, fmt.Errorf("writeBatchRequests: file exists: %s", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("writeBatchRequests: stat: %w", err)
		}
	}

	var b strings.Builder
	for _, rec := range records {
		req := batchRequest{
			CustomID: rec.ID + "-" + rec.Question,
			Method:   "POST",
			URL:      "/v1/chat/completions",
			Body: openai.ChatCompletionNewParams{
				Model: openai.ChatModel(model),
				Messages: []openai.ChatCompletionMessageParamUnion{
					openai.UserMessage(rec.Prompt),
				},
			},
		}
		line, err := json.Marshal(req)
		if err != nil {
			return 0, fmt.Errorf("writeBatchRequests: marshal %s: %w", req.CustomID, err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}

	if err := writeFileAtomic(path, []byte(b.String())); err != nil {
		return 0, fmt.Errorf("writeBatchRequests: write: %w", err)
	}
	return len(records), nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp_batch_*.jsonl")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
