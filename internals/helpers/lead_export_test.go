package helper

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLeadNotifierPostsEvent(t *testing.T) {
	got := make(chan LeadEvent, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev LeadEvent
		_ = json.NewDecoder(r.Body).Decode(&ev)
		got <- ev
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewLeadNotifier(srv.URL)
	n.Notify(context.Background(), LeadEvent{Kind: "contact", ID: 7, Name: "Jane", Email: "jane@x.com"})

	select {
	case ev := <-got:
		assert.Equal(t, "contact", ev.Kind)
		assert.EqualValues(t, 7, ev.ID)
		assert.Equal(t, "jane@x.com", ev.Email)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not called")
	}
}

func TestLeadNotifierBlankURLIsNoop(t *testing.T) {
	n := NewLeadNotifier("  ")
	_, ok := n.(noopNotifier)
	assert.True(t, ok)
	NotifyAsync(n, LeadEvent{Kind: "contact"})
	NotifyAsync(nil, LeadEvent{Kind: "contact"})
}

func TestBuildXLSX(t *testing.T) {
	when := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	data, err := BuildXLSX("Subscribers", []string{"Email", "Joined"}, [][]interface{}{
		{"jane@x.com", when},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Subscribers"}, f.GetSheetList())
	v, err := f.GetCellValue("Subscribers", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Email", v)
	v, err = f.GetCellValue("Subscribers", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01 09:30", v)
}
