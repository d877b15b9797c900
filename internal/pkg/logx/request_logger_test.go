package logx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"203.0.113.77:5123", "203.0.113.0"},
		{"203.0.113.77", "203.0.113.0"},
		{"10.20.30.40:1", "10.20.30.0"},
		{"127.0.0.1:80", "127.0.0.1"},
		{"[2001:db8:1:2:3:4:5:6]:443", "2001:db8:1:2::"},
		{"not-an-ip", "unknown_ip"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, anonymizeIP(tt.in), tt.in)
	}
}
