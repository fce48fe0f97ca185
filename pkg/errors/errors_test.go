package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := New(ErrCodeCalendarNotFound, "no calendar for TJSP/2026")
	assert.Equal(t, "[CAL_001] no calendar for TJSP/2026", e.Error())

	withDetail := e.WithDetail("tribunal=TJSP year=2026")
	assert.Equal(t, "[CAL_001] no calendar for TJSP/2026: tribunal=TJSP year=2026", withDetail.Error())
	// Original is untouched.
	assert.Empty(t, e.Detail)
}

func TestWrap_NilPassthrough(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeDatabaseError, "query failed"))
}

func TestWrap_PreservesInnerCode(t *testing.T) {
	inner := New(ErrCodeCatalogEntryNotFound, "entry CONTESTACAO not found")
	outer := Wrap(inner, "", "catalog lookup failed")

	assert.Equal(t, ErrCodeCatalogEntryNotFound, outer.Code)
	assert.True(t, stderrors.Is(outer, outer))
	assert.True(t, IsCode(outer, ErrCodeCatalogEntryNotFound))
	assert.True(t, IsNotFound(outer))
}

func TestWrap_ForeignError(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	outer := Wrap(inner, ErrCodeDatabaseError, "failed to query calendar")

	assert.Equal(t, ErrCodeDatabaseError, outer.Code)
	assert.ErrorIs(t, outer, inner)
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(NewValidation("trigger_date is required")))
	assert.True(t, IsValidation(New(ErrCodeInvalidServiceMethod, "unknown method")))
	assert.True(t, IsValidation(New(ErrCodeInvalidPartyComposition, "party missing pole")))
	assert.True(t, IsValidation(New(ErrCodeCalendarInvalid, "suspension overlaps holiday range")))
	assert.False(t, IsValidation(New(ErrCodeInternal, "boom")))
	assert.False(t, IsValidation(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetCode(nil))
	assert.Equal(t, ErrCodeInternal, GetCode(fmt.Errorf("plain")))
	assert.Equal(t, ErrCodeCalendarNotFound, GetCode(New(ErrCodeCalendarNotFound, "x")))
}

func TestHTTPStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatusForCode(ErrCodeCalendarNotFound))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusForCode(ErrCodeInvalidServiceMethod))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusForCode(ErrorCode("UNKNOWN_999")))

	assert.True(t, IsClientError(ErrCodeInvalidPartyComposition))
	assert.True(t, IsServerError(ErrCodeDatabaseError))
}
