package profile

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAddPostCapsSample(t *testing.T) {
	p := &Profile{}
	for i := range MaxPostsSample + 5 {
		p.AddPost("post " + strings.Repeat("x", i+1))
	}
	if len(p.PostsSample) != MaxPostsSample {
		t.Errorf("PostsSample length = %d, want %d", len(p.PostsSample), MaxPostsSample)
	}

	p2 := &Profile{}
	p2.AddPost("")
	if len(p2.PostsSample) != 0 {
		t.Error("empty snippets must be ignored")
	}
}

func TestDisplayName(t *testing.T) {
	p := &Profile{Username: "jane"}
	if got := p.DisplayName(); got != "jane" {
		t.Errorf("DisplayName() = %q, want username fallback", got)
	}
	p.Name = String("Jane Doe")
	if got := p.DisplayName(); got != "Jane Doe" {
		t.Errorf("DisplayName() = %q, want Jane Doe", got)
	}
}

func TestJSONOmitsAbsentFields(t *testing.T) {
	p := &Profile{Platform: PlatformGitHub, URL: "https://github.com/jane", Username: "jane"}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}

	s := string(data)
	for _, absent := range []string{"name", "bio", "followers", "verified", "posts_sample"} {
		if strings.Contains(s, `"`+absent+`"`) {
			t.Errorf("serialized profile contains absent field %q: %s", absent, s)
		}
	}

	p.Verified = Bool(false)
	data, err = json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"verified":false`) {
		t.Errorf("explicit false must survive serialization: %s", data)
	}
}

func TestStringHelper(t *testing.T) {
	if String("") != nil {
		t.Error("String(\"\") must be nil")
	}
	if v := String("x"); v == nil || *v != "x" {
		t.Errorf("String(x) = %v", v)
	}
}
