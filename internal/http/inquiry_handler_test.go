package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ayush2735/claynest-web-craft/internal/inquiry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInquiryHandler_Submit(t *testing.T) {
	ts := newTestServer(t)

	form := inquiry.Form{Name: "Ravi", Email: "ravi@example.com", Message: "Do you ship to Pune?"}
	rr := ts.do(t, http.MethodPost, "/api/v1/inquiries", form)
	require.Equal(t, http.StatusCreated, rr.Code)

	resp := decodeBody[InquiryResponse](t, rr)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, inquiry.MsgSent, resp.Message)
	assert.Equal(t, []inquiry.Form{form}, ts.inquiries.submitted)
}

func TestInquiryHandler_SubmitFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.inquiries.err = fmt.Errorf("%w: %w", inquiry.ErrSubmit, errors.New("db down"))

	rr := ts.do(t, http.MethodPost, "/api/v1/inquiries", inquiry.Form{Name: "Ravi", Email: "ravi@example.com", Message: "hi"})
	require.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, inquiry.MsgSendFailed, decodeBody[ErrorResponse](t, rr).Message)
}
