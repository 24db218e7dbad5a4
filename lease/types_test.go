package lease

import "testing"

func TestNormalizeDocumentStatus(t *testing.T) {
	tests := []struct {
		in   string
		want DocumentStatus
	}{
		{"Signed", DocSigned},
		{"Not Signed", DocNotSigned},
		{"No signature required", DocNoSignature},
		{"signed", DocSigned},
		{"not_signed", DocNotSigned},
		{"NOT SIGNED", DocNotSigned},
		{"no_signature_required", DocNoSignature},
		{"  Signed  ", DocSigned},
		{"", DocNotSigned},
		{"garbage", DocNotSigned},
	}
	for _, tt := range tests {
		if got := NormalizeDocumentStatus(tt.in); got != tt.want {
			t.Errorf("NormalizeDocumentStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePaymentStatus(t *testing.T) {
	tests := []struct {
		in   string
		want PaymentStatus
	}{
		{"paid", PaymentPaid},
		{"PAID", PaymentPaid},
		{"overdue", PaymentOverdue},
		{"pending", PaymentPending},
		{"", PaymentPending},
		{"unknown", PaymentPending},
	}
	for _, tt := range tests {
		if got := NormalizePaymentStatus(tt.in); got != tt.want {
			t.Errorf("NormalizePaymentStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	if got := NormalizeStatus("active"); got != StatusActive {
		t.Errorf("got %q", got)
	}
	if got := NormalizeStatus("Terminated"); got != StatusTerminated {
		t.Errorf("got %q", got)
	}
	if got := NormalizeStatus(""); got != StatusPending {
		t.Errorf("got %q", got)
	}
}

func TestDocumentDisplayName(t *testing.T) {
	tests := []struct {
		stored string
		want   string
	}{
		{"1717243200000_lease-agreement.pdf", "lease-agreement.pdf"},
		{"1717243200123_addendum v2.pdf", "addendum v2.pdf"},
		{"lease-agreement.pdf", "lease-agreement.pdf"},
		// Short numeric prefixes are part of the name, not an upload timestamp.
		{"2024_lease.pdf", "2024_lease.pdf"},
		{"contract_final.pdf", "contract_final.pdf"},
	}
	for _, tt := range tests {
		d := Document{FileName: tt.stored}
		if got := d.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.stored, got, tt.want)
		}
	}
}
