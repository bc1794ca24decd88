package symbolic_test

import (
	"strings"
	"testing"

	"github.com/njchilds90/linearcheck/symbolic"
)

func TestJSON_RoundTrip(t *testing.T) {
	for _, src := range []string{
		"2*x + y**2",
		"-3/2*x",
		"sin(x) + atan2(y, x)",
		"max(x, y, 1)",
		"pi*x + E",
		"(x + 1)**(1/2)",
	} {
		e := mustParse(t, src)
		js, err := symbolic.ToJSON(e)
		if err != nil {
			t.Fatalf("ToJSON(%s): %v", e, err)
		}
		back, err := symbolic.FromJSONString(js)
		if err != nil {
			t.Fatalf("FromJSONString(%s): %v", js, err)
		}
		if !back.Equal(e) {
			t.Errorf("round trip of %s gave %s", e, back)
		}
	}
}

func TestJSON_SingleArgForm(t *testing.T) {
	e, err := symbolic.FromJSONString(`{"type":"func","name":"cos","arg":{"type":"sym","name":"x"}}`)
	if err != nil {
		t.Fatal(err)
	}
	if !e.Equal(symbolic.CosOf(x)) {
		t.Errorf("want cos(x), got %s", e)
	}
}

func TestJSON_Errors(t *testing.T) {
	cases := []struct {
		js  string
		msg string
	}{
		{`{}`, "missing 'type'"},
		{`{"type":"matrix"}`, "unknown expression type"},
		{`{"type":"num","value":"abc"}`, "invalid num value"},
		{`{"type":"const","name":"tau"}`, "unknown constant"},
		{`{"type":"add","terms":[1]}`, "must be an object"},
		{`{"type":"pow","base":{"type":"sym","name":"x"}}`, `missing "exp"`},
		{`{"type":"func","name":"sin","args":[]}`, "at least one argument"},
		{`{"type":"func","name":"nosuch","arg":{"type":"sym","name":"x"}}`, "unknown function nosuch"},
		{`{"type":"func","name":"atan2","arg":{"type":"sym","name":"x"}}`, "atan2 takes 2 arguments, got 1"},
		{`{"type":"func","name":"sin","args":[{"type":"sym","name":"x"},{"type":"sym","name":"y"}]}`, "sin takes 1 argument, got 2"},
		{`[1, 2]`, "decode expression"},
	}
	for _, c := range cases {
		_, err := symbolic.FromJSONString(c.js)
		if err == nil {
			t.Errorf("FromJSONString(%s): expected error", c.js)
			continue
		}
		if !strings.Contains(err.Error(), c.msg) {
			t.Errorf("FromJSONString(%s): want %q in %q", c.js, c.msg, err.Error())
		}
	}
}
