package minio

import "testing"

func TestGetPublicURL(t *testing.T) {
	cases := []struct {
		name string
		s    *Storage
		want string
	}{
		{"plain", &Storage{bucket: "balgil", publicEndpoint: "localhost:9000"}, "http://localhost:9000/balgil/avatars/a.jpg"},
		{"ssl", &Storage{bucket: "balgil", publicEndpoint: "cdn.balgil.kr", useSSL: true}, "https://cdn.balgil.kr/balgil/avatars/a.jpg"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.GetPublicURL("avatars/a.jpg"); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
