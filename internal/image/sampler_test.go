package image

import "testing"

func TestEdgeMode_String(t *testing.T) {
	tests := []struct {
		mode EdgeMode
		want string
	}{
		{EdgeClamp, "Clamp"},
		{EdgeWrap, "Wrap"},
		{EdgeNone, "None"},
		{EdgeMode(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("EdgeMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestResolveCoord(t *testing.T) {
	tests := []struct {
		name   string
		c      int
		mode   EdgeMode
		want   int
		wantOK bool
	}{
		{"inside", 3, EdgeNone, 3, true},
		{"clamp low", -4, EdgeClamp, 0, true},
		{"clamp high", 12, EdgeClamp, 9, true},
		{"wrap low", -1, EdgeWrap, 9, true},
		{"wrap high", 13, EdgeWrap, 3, true},
		{"wrap far", -21, EdgeWrap, 9, true},
		{"none", 10, EdgeNone, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveCoord(tt.c, 0, 10, tt.mode)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ResolveCoord(%d) = (%d, %v), want (%d, %v)", tt.c, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// gradientImage returns a w x h buffer whose red channel encodes x/w.
func gradientImage(t *testing.T, w, h int) *ImageBuf {
	t.Helper()
	buf, err := NewImageBuf(w, h)
	if err != nil {
		t.Fatalf("NewImageBuf() error = %v", err)
	}
	for y := range h {
		for x := range w {
			_ = buf.SetPixel(x, y, [Channels]float32{float32(x) / float32(w), 0, 0, 1})
		}
	}
	return buf
}

func TestSampler_ClampMatchesEdgeColumn(t *testing.T) {
	buf := gradientImage(t, 8, 4)
	s := NewSampler(buf, nil, buf.Bounds(), EdgeClamp)

	for y := range 4 {
		if got, want := s.At(8+2, y), buf.Pixel(7, y); got != want {
			t.Errorf("At(10,%d) = %v, want %v", y, got, want)
		}
	}
}

func TestSampler_NoneReadsZero(t *testing.T) {
	buf := gradientImage(t, 8, 4)
	s := NewSampler(buf, nil, buf.Bounds(), EdgeNone)

	if got := s.At(8+2, 1); got != ([Channels]float32{}) {
		t.Errorf("At(10,1) = %v, want zero", got)
	}
	if got := s.Channel(-1, 1, 3); got != 0 {
		t.Errorf("Channel(-1,1,alpha) = %v, want 0", got)
	}
}

func TestSampler_Wrap(t *testing.T) {
	buf := gradientImage(t, 8, 4)
	s := NewSampler(buf, nil, buf.Bounds(), EdgeWrap)

	if got, want := s.Channel(-1, 0, 0), buf.Pixel(7, 0)[0]; got != want {
		t.Errorf("Channel(-1,0) = %v, want %v", got, want)
	}
}

func TestSampler_FallsBackToBase(t *testing.T) {
	base := gradientImage(t, 8, 4)
	live, _ := NewImageBufAt(NewRect(0, 0, 4, 4))
	live.Fill([Channels]float32{1, 1, 1, 1})
	s := NewSampler(live, base, base.Bounds(), EdgeWrap)

	if got := s.Channel(1, 1, 0); got != 1 {
		t.Errorf("live Channel(1,1) = %v, want 1", got)
	}
	if got, want := s.Channel(-1, 1, 0), base.Pixel(7, 1)[0]; got != want {
		t.Errorf("wrapped Channel(-1,1) = %v, want base %v", got, want)
	}
	if got, want := s.At(6, 2), base.Pixel(6, 2); got != want {
		t.Errorf("At(6,2) = %v, want base %v", got, want)
	}
}
