package webhook

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestGenerateSignature(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		at      time.Time
		payload []byte
	}{
		{
			name:    "checkout event",
			secret:  "whsec_test123",
			at:      time.Unix(1736600000, 0),
			payload: []byte(`{"type":"checkout.session.completed","id":"evt_1"}`),
		},
		{
			name:    "empty payload",
			secret:  "secret",
			at:      time.Unix(1000000000, 0),
			payload: []byte(`{}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := GenerateSignature(tt.secret, tt.at, tt.payload)

			// Signature should be hex-encoded (64 chars for SHA256)
			if len(sig) != 64 {
				t.Errorf("signature length = %d, want 64", len(sig))
			}

			if sig != GenerateSignature(tt.secret, tt.at, tt.payload) {
				t.Error("signature is not deterministic")
			}

			if sig == GenerateSignature(tt.secret, tt.at.Add(time.Second), tt.payload) {
				t.Error("different timestamp should produce different signature")
			}

			if sig == GenerateSignature(tt.secret+"x", tt.at, tt.payload) {
				t.Error("different secret should produce different signature")
			}
		})
	}
}

func TestSignHeader(t *testing.T) {
	at := time.Unix(1736600000, 0)
	payload := []byte(`{"type":"invoice.paid"}`)

	got := SignHeader("whsec_test", at, payload)
	want := fmt.Sprintf("t=%d,v1=%s", at.Unix(), GenerateSignature("whsec_test", at, payload))
	if got != want {
		t.Errorf("SignHeader() = %q, want %q", got, want)
	}
}

func TestVerify(t *testing.T) {
	secret := "whsec_test"
	now := time.Unix(1736600000, 0)
	payload := []byte(`{"type":"invoice.paid"}`)

	tests := []struct {
		name    string
		header  string
		payload []byte
		wantErr error
	}{
		{
			name:    "valid signature",
			header:  SignHeader(secret, now, payload),
			payload: payload,
		},
		{
			name:    "one of several signatures valid",
			header:  "t=1736600000,v1=deadbeef,v1=" + GenerateSignature(secret, now, payload),
			payload: payload,
		},
		{
			name:    "tampered payload",
			header:  SignHeader(secret, now, payload),
			payload: []byte(`{"type":"invoice.unpaid"}`),
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "wrong secret",
			header:  SignHeader("whsec_other", now, payload),
			payload: payload,
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "expired timestamp",
			header:  SignHeader(secret, now.Add(-10*time.Minute), payload),
			payload: payload,
			wantErr: ErrReplayWindowExceeded,
		},
		{
			name:    "future timestamp beyond window",
			header:  SignHeader(secret, now.Add(10*time.Minute), payload),
			payload: payload,
			wantErr: ErrReplayWindowExceeded,
		},
		{
			name:    "missing header",
			header:  "",
			payload: payload,
			wantErr: ErrMissingHeader,
		},
		{
			name:    "bad timestamp",
			header:  "t=soon,v1=" + GenerateSignature(secret, now, payload),
			payload: payload,
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "pair without equals",
			header:  "t=1736600000,garbage",
			payload: payload,
			wantErr: ErrMalformedHeader,
		},
		{
			name:    "only v0 signatures",
			header:  "t=1736600000,v0=" + GenerateSignature(secret, now, payload),
			payload: payload,
			wantErr: ErrInvalidSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(secret, tt.header, tt.payload, DefaultTolerance, now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerify_ZeroToleranceSkipsReplayCheck(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{}`)
	old := time.Unix(1000000000, 0)

	if err := Verify(secret, SignHeader(secret, old, payload), payload, 0, time.Now()); err != nil {
		t.Errorf("Verify() with zero tolerance error = %v, want nil", err)
	}
}

func TestVerify_WallClockSignature(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"id":"evt_2"}`)
	header := SignHeader(secret, time.Now(), payload)

	if !strings.HasPrefix(header, "t=") {
		t.Fatalf("header = %q, want t= prefix", header)
	}
	if err := Verify(secret, header, payload, DefaultTolerance, time.Now()); err != nil {
		t.Errorf("Verify() error = %v, want nil", err)
	}
}
