package service

import (
	"testing"
	"time"

	"github.com/bornholm/chatten/internal/core/model"
)

func TestResponseMemo(t *testing.T) {
	memo := NewResponseMemo(2, time.Minute)

	req := model.ChatRequest{Message: "What is the budget?"}
	res := &model.ChatResponse{Content: "Ten millions"}

	if memo.Contains(req) {
		t.Errorf("memo.Contains(): expected false before Put")
	}

	memo.Put(req, res)

	if !memo.Contains(req) {
		t.Errorf("memo.Contains(): expected true after Put")
	}

	got, exists := memo.Get(model.ChatRequest{Message: "  What is the budget?\n"})
	if !exists {
		t.Fatalf("memo.Get(): expected normalized request to be memoized")
	}

	if got != res {
		t.Errorf("memo.Get(): expected the stored response")
	}

	memo.Put(model.ChatRequest{Message: "second"}, &model.ChatResponse{})
	memo.Put(model.ChatRequest{Message: "third"}, &model.ChatResponse{})

	if memo.Contains(req) {
		t.Errorf("memo.Contains(): expected oldest request to be evicted")
	}
}

func TestResponseMemoTTL(t *testing.T) {
	memo := NewResponseMemo(10, 100*time.Millisecond)

	req := model.ChatRequest{Message: "hello"}
	memo.Put(req, &model.ChatResponse{Content: "hi"})

	time.Sleep(300 * time.Millisecond)

	if _, exists := memo.Get(req); exists {
		t.Errorf("memo.Get(): expected response to have expired")
	}
}
