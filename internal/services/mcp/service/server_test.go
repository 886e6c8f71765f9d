package service

import (
	"context"
	"encoding/json"
	"slices"
	"testing"
	"time"

	"github.com/louisbranch/solo.space/internal/content"
	"github.com/louisbranch/solo.space/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func decodeStructuredContent[T any](t *testing.T, value any) T {
	t.Helper()
	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("encode structured content: %v", err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode structured content: %v", err)
	}
	return out
}

// connect serves s over an in-memory transport and returns a client session
// plus a stop function that reports the serve error.
func connect(t *testing.T, s *Server) (*mcp.ClientSession, func() error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer connectCancel()
	session, err := client.Connect(connectCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}

	stop := func() error {
		cancel()
		_ = session.Close()
		select {
		case err := <-serveErr:
			return err
		case <-time.After(2 * time.Second):
			t.Fatal("server did not stop after cancel")
			return nil
		}
	}
	return session, stop
}

func TestServerListsTools(t *testing.T) {
	session, stop := connect(t, New(content.Starter()))

	listed, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	var names []string
	for _, tool := range listed.Tools {
		names = append(names, tool.Name)
	}
	slices.Sort(names)
	want := []string{"classify_scene", "evaluate_check", "fate_question", "list_tables", "roll_dice", "roll_table", "update_tension"}
	if !slices.Equal(names, want) {
		t.Fatalf("tools = %v, want %v", names, want)
	}

	if err := stop(); err != nil {
		t.Fatalf("serve returned error: %v", err)
	}
}

func TestServerCallsTools(t *testing.T) {
	s := New(content.Starter(), WithSeedSource(func() (uint64, error) { return 1, nil }))
	session, stop := connect(t, s)
	defer func() {
		if err := stop(); err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	}()
	ctx := context.Background()

	t.Run("roll_dice", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "roll_dice",
			Arguments: map[string]any{"dice": []string{"2d6+1", "1d8"}},
		})
		if err != nil {
			t.Fatalf("call roll_dice: %v", err)
		}
		if result.IsError {
			t.Fatalf("roll_dice returned error content: %+v", result.Content)
		}
		output := decodeStructuredContent[domain.RollDiceResult](t, result.StructuredContent)
		if output.Total != 16 || output.Seed != 1 || output.Sequence != 3 {
			t.Fatalf("output = %+v", output)
		}
	})

	t.Run("roll_table", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "roll_table",
			Arguments: map[string]any{"table_id": "room_contents", "seed": 12345},
		})
		if err != nil {
			t.Fatalf("call roll_table: %v", err)
		}
		if result.IsError {
			t.Fatalf("roll_table returned error content: %+v", result.Content)
		}
		output := decodeStructuredContent[domain.RollTableResult](t, result.StructuredContent)
		if len(output.Rolls) != 2 || len(output.Nodes) != 1 || output.Sequence != 2 {
			t.Fatalf("output = %+v", output)
		}
	})

	t.Run("tool errors are reported in the result", func(t *testing.T) {
		result, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "fate_question",
			Arguments: map[string]any{"likelihood": "perhaps"},
		})
		if err != nil {
			t.Fatalf("call fate_question: %v", err)
		}
		if !result.IsError {
			t.Fatalf("expected error result, got %+v", result)
		}
	})
}

func TestServeWithoutServer(t *testing.T) {
	var s *Server
	if err := s.serveWithTransport(context.Background(), nil); err == nil {
		t.Fatal("expected error for unconfigured server")
	}
}
