package interpreter

import "testing"

func TestExtractTone(t *testing.T) {
	tests := []struct {
		in        string
		tone      string
		intensity string
	}{
		{in: "make it more professional", tone: "professional", intensity: "more"},
		{in: "less serious", tone: "serious", intensity: "less"},
		{in: "a little less serious", tone: "serious", intensity: "less"},
		{in: "make it very funny", tone: "funny", intensity: "more"},
		{in: "make it spicier", tone: "spicy", intensity: "more"},
		{in: "make it casual", tone: "casual", intensity: ""},
		{in: "sound friendly", tone: "friendly", intensity: ""},
	}
	for _, tc := range tests {
		p := ExtractParameters(CommandChangeTone, Normalize(tc.in))
		if p == nil {
			t.Fatalf("ExtractParameters(%q) returned nil", tc.in)
		}
		if p.Tone != tc.tone || p.Intensity != tc.intensity {
			t.Fatalf("ExtractParameters(%q)={%q %q} want {%q %q}", tc.in, p.Tone, p.Intensity, tc.tone, tc.intensity)
		}
	}

	if p := ExtractParameters(CommandChangeTone, "change the vibe"); p != nil {
		t.Fatalf("expected nil params for toneless input, got %+v", p)
	}
}

func TestExtractLanguage(t *testing.T) {
	tests := []struct {
		in   string
		lang string
	}{
		{in: "translate to Japanese", lang: "japanese"},
		{in: "translate it into spanish", lang: "spanish"},
		{in: "say it in french", lang: "french"},
		{in: "put it in a friendly way in swahili", lang: "swahili"},
	}
	for _, tc := range tests {
		p := ExtractParameters(CommandTranslate, Normalize(tc.in))
		if p == nil || p.Language != tc.lang {
			t.Fatalf("ExtractParameters(%q)=%+v want language %q", tc.in, p, tc.lang)
		}
	}

	if p := ExtractParameters(CommandTranslate, "translate it"); p != nil {
		t.Fatalf("expected nil params without a language, got %+v", p)
	}
}

func TestExtractImageStyle(t *testing.T) {
	tests := []struct {
		in    string
		style string
	}{
		{in: "change to a minimalist image", style: "minimalist"},
		{in: "use a professional photo", style: "professional"},
		{in: "try a vibrant picture", style: "vibrant"},
	}
	for _, tc := range tests {
		p := ExtractParameters(CommandChangeImage, Normalize(tc.in))
		if p == nil || p.ImageStyle != tc.style {
			t.Fatalf("ExtractParameters(%q)=%+v want style %q", tc.in, p, tc.style)
		}
	}

	// Articles and determiners are not styles.
	for _, in := range []string{"change the image", "use a different picture"} {
		if p := ExtractParameters(CommandChangeImage, Normalize(in)); p != nil {
			t.Fatalf("ExtractParameters(%q)=%+v want nil", in, p)
		}
	}
}

func TestExtractorsArePure(t *testing.T) {
	in := Normalize("make it a little less serious")
	a := ExtractParameters(CommandChangeTone, in)
	b := ExtractParameters(CommandChangeTone, in)
	if a == nil || b == nil || *a != *b {
		t.Fatalf("extractor not stable: %+v vs %+v", a, b)
	}
}

func TestExtractorsIgnoreUnrelatedTypes(t *testing.T) {
	if p := ExtractParameters(CommandPublish, "publish it in style"); p != nil {
		t.Fatalf("publish should carry no parameters, got %+v", p)
	}
}
