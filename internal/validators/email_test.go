package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	mx    map[string]bool
	hosts map[string]bool
	seen  []string
}

func (f *fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	f.seen = append(f.seen, name)
	if f.mx[name] {
		return []*net.MX{{Host: "mx." + name, Pref: 10}}, nil
	}
	return nil, errors.New("no mx")
}

func (f *fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if f.hosts[host] {
		return []net.IPAddr{{IP: net.IPv4(10, 0, 0, 1)}}, nil
	}
	return nil, errors.New("no host")
}

func TestEmailDomain(t *testing.T) {
	r := &fakeResolver{
		mx:    map[string]bool{"mail.uz": true},
		hosts: map[string]bool{"clinic.uz": true},
	}
	v := NewEmailDomain(r)

	tests := []struct {
		email string
		want  bool
	}{
		{"ali@mail.uz", true},
		{" Ali@MAIL.uz ", true},
		{"desk@clinic.uz", true},
		{"ghost@nowhere.uz", false},
		{"no-at-sign", false},
		{"a@", false},
		{"@mail.uz", false},
		{"a@localhost", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Valid(tt.email))
		})
	}
}

func TestEmailDomainSkipsLookupForMalformedInput(t *testing.T) {
	r := &fakeResolver{}
	v := NewEmailDomain(r)

	assert.False(t, v.Valid("broken"))
	assert.Empty(t, r.seen)
}
