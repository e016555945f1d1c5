package epub

import "testing"

func TestResolveHref_PercentEncoded(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"chapter%201.xhtml", "OEBPS/chapter 1.xhtml"},
		{"images/cover%20image.jpg", "OEBPS/images/cover image.jpg"},
		{"plain.xhtml", "OEBPS/plain.xhtml"},
		{"../shared/common.css", "shared/common.css"},
	}
	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			item := &ManifestItem{Href: tt.href, opfDir: "OEBPS"}
			if got := item.ResolveHref(); got != tt.want {
				t.Errorf("ResolveHref() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveHref_NoOPFDir(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"chapter1.xhtml", "chapter1.xhtml"},
		{"sub/dir/file.xhtml", "sub/dir/file.xhtml"},
	}
	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			item := &ManifestItem{Href: tt.href, opfDir: ""}
			if got := item.ResolveHref(); got != tt.want {
				t.Errorf("ResolveHref() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveHref_InvalidEscapeFallsBackToRaw(t *testing.T) {
	item := &ManifestItem{Href: "bad%escape.xhtml", opfDir: "OEBPS"}
	want := "OEBPS/bad%escape.xhtml"
	if got := item.ResolveHref(); got != want {
		t.Errorf("ResolveHref() = %q, want %q", got, want)
	}
}
