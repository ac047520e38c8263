package storage

import "testing"

func TestSafeBaseName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "cover.jpg", want: "cover"},
		{name: "uppercase and spaces", in: "My Summer Photo.JPG", want: "my-summer-photo"},
		{name: "accents stripped", in: "Über-Foto.png", want: "uber-foto"},
		{name: "path components dropped", in: "../../etc/passwd.png", want: "passwd"},
		{name: "inner dots collapse", in: "a.b.c.webp", want: "a-b-c"},
		{name: "symbols removed", in: "im@ge!!.gif", want: "imge"},
		{name: "empty falls back", in: "....", want: "image"},
		{name: "unicode only falls back", in: "写真.jpg", want: "image"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SafeBaseName(tc.in); got != tc.want {
				t.Fatalf("SafeBaseName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
