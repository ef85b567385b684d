package domain

import "testing"

func TestDecodeMergesOverDefaults(t *testing.T) {
	t.Parallel()
	a, err := Decode([]byte(`{"sound":"ocean"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := Defaults()
	want.Sound = SoundOcean
	if a != want {
		t.Fatalf("expected %+v, got %+v", want, a)
	}
}

func TestDecodeRepairsInvalidFields(t *testing.T) {
	t.Parallel()
	a, err := Decode([]byte(`{"sound":"jazz","volume":4,"fadeInDuration":-2,"autoStart":false}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a.Sound != SoundSilent || a.Volume != 0.3 || a.FadeInDuration != 1 || a.AutoStart {
		t.Fatalf("unexpected repaired prefs: %+v", a)
	}
	if _, err := Decode([]byte("[")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestApplyAndValidate(t *testing.T) {
	t.Parallel()
	rain := SoundRain
	vol := 0.8
	a := Defaults().Apply(Patch{Sound: &rain, Volume: &vol})
	if a.Sound != SoundRain || a.Volume != 0.8 || a.FadeOutDuration != 1 {
		t.Fatalf("unexpected patched prefs: %+v", a)
	}
	if err := a.Validate(); err != nil {
		t.Fatalf("expected valid: %v", err)
	}

	bad := Sound("karaoke")
	loud := 1.5
	neg := -1.0
	if err := Defaults().Apply(Patch{Sound: &bad, Volume: &loud, FadeOutDuration: &neg}).Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
	if !(Patch{}).Empty() {
		t.Fatalf("zero patch must be empty")
	}
}
