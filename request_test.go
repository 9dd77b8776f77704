package formkit_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit"
)

func TestIsHTMX(t *testing.T) {
	r := httptest.NewRequest("POST", "/", nil)
	assert.False(t, formkit.IsHTMX(r))

	r.Header.Set(formkit.HXRequest, "true")
	r.Header.Set(formkit.HXTarget, "field-email")
	r.Header.Set(formkit.HXTriggerName, "email")
	assert.True(t, formkit.IsHTMX(r))
	assert.Equal(t, "field-email", formkit.HTMXTarget(r))
	assert.Equal(t, "email", formkit.HTMXTriggerName(r))
}

func TestIsDataStar(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		headers map[string]string
		want    bool
	}{
		{"request header", "/", map[string]string{"Datastar-Request": "true"}, true},
		{"sse accept", "/", map[string]string{"Accept": "text/html, text/event-stream"}, true},
		{"query signals", `/?datastar={"valid":true}`, nil, true},
		{"plain request", "/", map[string]string{"Accept": "text/html"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, formkit.IsDataStar(r))
		})
	}
}

func TestSetHTMXEvent(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, formkit.SetHTMXEvent(w, "formkit:validity", map[string]bool{"valid": true}))
	assert.JSONEq(t, `{"formkit:validity":{"valid":true}}`, w.Header().Get(formkit.HXTrigger))

	assert.Error(t, formkit.SetHTMXEvent(w, "bad", make(chan int)))
}
