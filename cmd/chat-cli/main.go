package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"

	"synx.backend/pkg/sse"
)

type chatRequest struct {
	Message        string `json:"message"`
	UserID         string `json:"userId"`
	ChatID         string `json:"chatId"`
	IsFirstMessage bool   `json:"isFirstMessage"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "backend base URL")
	userID := flag.String("user", "", "user id (DID)")
	chatID := flag.String("chat", "", "chat id; a new one is generated when empty")
	flag.Parse()

	if *userID == "" {
		log.Fatal("missing -user")
	}
	first := false
	if *chatID == "" {
		*chatID = uuid.NewString()
		first = true
		fmt.Printf("chat %s\n", *chatID)
	}

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			break
		}
		message := strings.TrimSpace(in.Text())
		if message == "" {
			continue
		}
		if err := streamTurn(*baseURL, chatRequest{
			Message:        message,
			UserID:         *userID,
			ChatID:         *chatID,
			IsFirstMessage: first,
		}); err != nil {
			log.Fatalf("turn failed: %v", err)
		}
		first = false
	}
}

// streamTurn posts one message and renders the response records as they
// arrive: deltas extend the current line, a reset restarts it, a tool record
// is followed by the transfer details on their own line.
func streamTurn(baseURL string, req chatRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	resp, err := http.Post(baseURL+"/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	dec := sse.NewDecoder()
	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		for _, ev := range dec.Feed(buf[:n]) {
			switch ev.Kind {
			case sse.KindDelta:
				fmt.Print(ev.Text)
			case sse.KindReset:
				fmt.Print("\n" + ev.Text)
			case sse.KindTool:
				fmt.Print(ev.Text)
				if ev.Tool != nil {
					fmt.Printf("\n  [%s] %s ETH -> %s (tx %s)",
						ev.Tool.Tool, ev.Tool.Parameters.Amount, ev.Tool.Parameters.To, ev.Tool.Parameters.TxHash)
				}
			case sse.KindError:
				fmt.Printf("\nerror: %s\n", ev.Text)
				return nil
			case sse.KindDone:
				fmt.Println()
				return nil
			}
		}
		if readErr == io.EOF {
			fmt.Println()
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}
