package venue

import "testing"

func TestNameKeyFor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain name", in: "TD Garden", want: "td-garden"},
		{name: "punctuation collapsed", in: "Scotiabank Arena / Toronto", want: "scotiabank-arena-toronto"},
		{name: "surrounding whitespace", in: "  Bell Centre  ", want: "bell-centre"},
		{name: "accents dropped", in: "Centre Vidéotron", want: "centre-vid-otron"},
		{name: "empty", in: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NameKeyFor(tt.in); got != tt.want {
				t.Fatalf("NameKeyFor(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVenueValidate(t *testing.T) {
	valid := Venue{NameKey: "td-garden", Name: "TD Garden"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid venue, got %v", err)
	}

	if err := (Venue{Name: "TD Garden"}).Validate(); err == nil {
		t.Fatalf("expected error for missing name key")
	}
	if err := (Venue{NameKey: "td-garden"}).Validate(); err == nil {
		t.Fatalf("expected error for missing name")
	}
}
