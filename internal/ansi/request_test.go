package ansi

import (
	"errors"
	"sync"
	"testing"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr bool
	}{
		{"device attributes", DeviceAttributes(), false},
		{"cursor position", CursorPosition(), false},
		{"text area size", TextAreaSize(), false},
		{"nil", nil, true},
		{"empty text", &Request{Terminator: "c"}, true},
		{"no escape", &Request{Text: "[c", Terminator: "c"}, true},
		{"empty terminator", &Request{Text: "\x1b[c"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("Validate() error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestRequestConstructors(t *testing.T) {
	tests := []struct {
		req        *Request
		text, term string
	}{
		{DeviceAttributes(), "\x1b[c", "c"},
		{CursorPosition(), "\x1b[6n", "R"},
		{TextAreaSize(), "\x1b[18t", "t"},
	}
	for _, tt := range tests {
		if tt.req.Text != tt.text || tt.req.Terminator != tt.term {
			t.Errorf("request = {%q %q}, want {%q %q}", tt.req.Text, tt.req.Terminator, tt.text, tt.term)
		}
		if tt.req.ID == "" {
			t.Error("request has no ID")
		}
	}
	if DeviceAttributes().ID == DeviceAttributes().ID {
		t.Error("request IDs are not unique")
	}
}

func TestRequestCompletesOnce(t *testing.T) {
	req := DeviceAttributes()
	var mu sync.Mutex
	var calls int
	req.OnResponse = func(Response) {
		mu.Lock()
		calls++
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req.Abandon()
		}()
	}
	wg.Wait()

	if req.complete(Response{Raw: "\x1b[?1c"}) {
		t.Error("complete() succeeded on a completed request")
	}
	if calls != 1 {
		t.Errorf("OnResponse called %d times, want 1", calls)
	}
	resp, _ := req.Response()
	if !resp.Abandoned() {
		t.Errorf("response = %+v, want abandoned", resp)
	}
}

func TestRequestZeroValueDone(t *testing.T) {
	req := &Request{Text: "\x1b[c", Terminator: "c"}
	done := req.Done()
	req.Fail(ErrMalformedResponse)
	<-done
	resp, ok := req.Response()
	if !ok || !errors.Is(resp.Err, ErrMalformedResponse) {
		t.Errorf("Response() = %+v, %v", resp, ok)
	}
}

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name      string
		seq, term string
		value     string
		params    []int
		malformed bool
	}{
		{"device attributes", "\x1b[?1;2c", "c", "1", []int{1, 2}, false},
		{"secondary attributes", "\x1b[>0;95;0c", "c", "0", []int{0, 95, 0}, false},
		{"cursor position", "\x1b[12;40R", "R", "12", []int{12, 40}, false},
		{"size", "\x1b[8;24;80t", "t", "8", []int{8, 24, 80}, false},
		{"no params", "\x1b[c", "c", "", nil, false},
		{"empty param", "\x1b[;5R", "R", "", []int{0, 5}, false},
		{"no escape", "[?1;2c", "c", "", nil, true},
		{"wrong terminator", "\x1b[?1;2c", "R", "", nil, true},
		{"non numeric", "\x1b[?1;xc", "c", "1", []int{1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := decodeResponse(tt.seq, tt.term)
			if tt.malformed {
				if !errors.Is(resp.Err, ErrMalformedResponse) {
					t.Fatalf("Err = %v, want ErrMalformedResponse", resp.Err)
				}
				if resp.Abandoned() {
					t.Error("malformed response reported as abandoned")
				}
				return
			}
			if !resp.OK() {
				t.Fatalf("Err = %v", resp.Err)
			}
			if resp.Value != tt.value {
				t.Errorf("Value = %q, want %q", resp.Value, tt.value)
			}
			if len(resp.Params) != len(tt.params) {
				t.Fatalf("Params = %v, want %v", resp.Params, tt.params)
			}
			for i := range tt.params {
				if resp.Params[i] != tt.params[i] {
					t.Errorf("Params = %v, want %v", resp.Params, tt.params)
					break
				}
			}
		})
	}
}

func TestResponseParam(t *testing.T) {
	r := Response{Params: []int{8, 24, 80}}
	if r.Param(2, -1) != 80 {
		t.Errorf("Param(2) = %d", r.Param(2, -1))
	}
	if r.Param(3, -1) != -1 || r.Param(-1, -1) != -1 {
		t.Error("Param out of range should return default")
	}
}
