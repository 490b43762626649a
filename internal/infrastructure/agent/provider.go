package agent

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/params"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"synx.backend/internal/domain/entities"
	"synx.backend/internal/infrastructure/blockchain"
	"synx.backend/pkg/logger"
	"synx.backend/pkg/sse"
)

const toolNativeTransfer = "nativeTransfer"

// transferFunc broadcasts a native transfer and returns the tx hash
type transferFunc func(ctx context.Context, to string, amountWei *big.Int) (string, error)

// responseStream abstracts the model's streamed responses for testing
type responseStream interface {
	Next() (*genai.GenerateContentResponse, error)
}

// sendFunc continues a chat session with more parts, yielding a new stream
type sendFunc func(ctx context.Context, parts ...genai.Part) responseStream

// GeminiAgent is one user's conversational agent: a Gemini chat session
// armed with a nativeTransfer tool that signs with the user's wallet.
type GeminiAgent struct {
	client    *genai.Client
	modelName string
	memory    *ThreadMemory
	wallet    *Wallet
	transfer  transferFunc
}

// NewGeminiAgent binds a model client to a user's wallet and chain access
func NewGeminiAgent(client *genai.Client, modelName string, memory *ThreadMemory, wallet *Wallet, chain *blockchain.EVMClient) *GeminiAgent {
	return &GeminiAgent{
		client:    client,
		modelName: modelName,
		memory:    memory,
		wallet:    wallet,
		transfer: func(ctx context.Context, to string, amountWei *big.Int) (string, error) {
			return chain.SendNative(ctx, wallet.Key, to, amountWei)
		},
	}
}

// Stream submits one user message on a conversation thread and returns the
// agent's output fragments. Content on fragments is cumulative.
func (a *GeminiAgent) Stream(ctx context.Context, threadID, message string) (<-chan entities.StreamEvent, error) {
	model := a.client.GenerativeModel(a.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(a.systemPrompt())},
	}
	model.Tools = []*genai.Tool{nativeTransferTool()}

	cs := model.StartChat()

	history, err := a.memory.History(ctx, threadID)
	if err != nil {
		logger.Warn(ctx, "failed to load thread memory, continuing without history",
			zap.String("thread_id", threadID), zap.Error(err))
	}
	for _, turn := range history {
		cs.History = append(cs.History, &genai.Content{
			Role:  turn.Role,
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}

	send := func(ctx context.Context, parts ...genai.Part) responseStream {
		return cs.SendMessageStream(ctx, parts...)
	}

	out := make(chan entities.StreamEvent)
	go a.pump(ctx, threadID, message, send, out)
	return out, nil
}

// pump drives the model stream, translating parts to fragments and relaying
// tool calls through the wallet. Closes out when the turn ends.
func (a *GeminiAgent) pump(ctx context.Context, threadID, message string, send sendFunc, out chan<- entities.StreamEvent) {
	defer close(out)

	// emit blocks until the consumer takes the event. A cancelled context
	// means the consumer abandoned the channel (client disconnect), so the
	// pump must stop rather than block on the unbuffered send forever.
	emit := func(ev entities.StreamEvent) bool {
		select {
		case out <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	var assembled strings.Builder
	stream := send(ctx, genai.Text(message))

	for {
		resp, err := stream.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			emit(entities.StreamEvent{Err: err})
			return
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}

		for _, part := range resp.Candidates[0].Content.Parts {
			switch p := part.(type) {
			case genai.Text:
				assembled.WriteString(string(p))
				if !emit(entities.StreamEvent{Fragment: &entities.Fragment{Content: assembled.String()}}) {
					return
				}
			case genai.FunctionCall:
				tool, reply, err := a.executeTool(ctx, p)
				if err != nil {
					emit(entities.StreamEvent{Err: err})
					return
				}
				// The visible message restarts at the tool summary.
				assembled.Reset()
				assembled.WriteString(tool.Summary)
				if !emit(entities.StreamEvent{Fragment: &entities.Fragment{Content: tool.Summary, Tool: tool}}) {
					return
				}
				stream = send(ctx, reply)
			}
		}
	}

	if err := a.memory.Append(ctx, threadID, "user", message); err != nil {
		logger.Warn(ctx, "failed to remember user turn", zap.String("thread_id", threadID), zap.Error(err))
	}
	if assembled.Len() > 0 {
		if err := a.memory.Append(ctx, threadID, "model", assembled.String()); err != nil {
			logger.Warn(ctx, "failed to remember model turn", zap.String("thread_id", threadID), zap.Error(err))
		}
	}
}

// executeTool runs one tool call and builds both the client-facing result and
// the reply part fed back to the model.
func (a *GeminiAgent) executeTool(ctx context.Context, call genai.FunctionCall) (*sse.ToolResult, genai.Part, error) {
	if call.Name != toolNativeTransfer {
		return nil, nil, fmt.Errorf("model requested unknown tool %q", call.Name)
	}

	amount, err := stringArg(call.Args, "amount")
	if err != nil {
		return nil, nil, err
	}
	to, err := stringArg(call.Args, "to")
	if err != nil {
		return nil, nil, err
	}

	wei, err := parseEtherAmount(amount)
	if err != nil {
		return nil, nil, err
	}

	txHash, err := a.transfer(ctx, to, wei)
	if err != nil {
		return nil, nil, fmt.Errorf("native transfer failed: %w", err)
	}

	tool := &sse.ToolResult{
		Tool:    toolNativeTransfer,
		Summary: fmt.Sprintf("Sent %s ETH to %s. Transaction hash: %s", amount, to, txHash),
		Parameters: sse.TransferParams{
			Amount: amount,
			To:     to,
			TxHash: txHash,
		},
	}
	reply := genai.FunctionResponse{
		Name:     toolNativeTransfer,
		Response: map[string]any{"status": "submitted", "txHash": txHash},
	}
	return tool, reply, nil
}

func (a *GeminiAgent) systemPrompt() string {
	return fmt.Sprintf(
		"You are SYNX, a helpful onchain assistant with your own wallet. "+
			"Your wallet address is %s on the %s network. "+
			"You can send native currency with the nativeTransfer tool when the user asks for a transfer. "+
			"Always confirm amounts and destination addresses back to the user in plain language.",
		a.wallet.Address, a.wallet.NetworkID)
}

func nativeTransferTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        toolNativeTransfer,
			Description: "Send native currency from the agent wallet to a destination address.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"amount": {
						Type:        genai.TypeString,
						Description: "Amount to send, denominated in whole ETH, e.g. \"0.01\".",
					},
					"to": {
						Type:        genai.TypeString,
						Description: "Destination address, 0x-prefixed hex.",
					},
				},
				Required: []string{"amount", "to"},
			},
		}},
	}
}

func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok {
		return "", fmt.Errorf("tool call missing %q argument", name)
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("tool call argument %q has unsupported type %T", name, v)
	}
}

// parseEtherAmount converts a decimal ETH amount to wei
func parseEtherAmount(s string) (*big.Int, error) {
	f, ok := new(big.Float).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if f.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %q", s)
	}
	wei, _ := new(big.Float).Mul(f, big.NewFloat(params.Ether)).Int(nil)
	return wei, nil
}
