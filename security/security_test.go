package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	c, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, 1<<20, c.MaxInputSize)
	assert.False(t, c.PadInputs)
	assert.Equal(t, Basic, c.TimingProtection)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{
			name: "zero max size rejected",
			opts: []Option{WithMaxInputSize(0)},
			wantErr: true,
		},
		{
			name: "padding smaller than max size rejected",
			opts: []Option{WithMaxInputSize(100), WithPadding(50)},
			wantErr: true,
		},
		{
			name: "strict without padding rejected",
			opts: []Option{WithMaxInputSize(100), WithTimingProtection(Strict)},
			wantErr: true,
		},
		{
			name: "strict with padding accepted",
			opts: []Option{WithMaxInputSize(100), WithPadding(4096), WithTimingProtection(Strict)},
			wantErr: false,
		},
		{
			name: "max edit distance too large rejected",
			opts: []Option{WithMaxInputSize(100), WithMaxEditDistance(201)},
			wantErr: true,
		},
		{
			name: "max edit distance at boundary accepted",
			opts: []Option{WithMaxInputSize(100), WithMaxEditDistance(200)},
			wantErr: false,
		},
		{
			name: "negative max edit distance rejected",
			opts: []Option{WithMaxInputSize(100), WithMaxEditDistance(-1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.opts...)
			if tt.wantErr {
				assert.Error(t, err)
				var secErr *Error
				assert.ErrorAs(t, err, &secErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAdmit(t *testing.T) {
	c, err := NewConfig(WithMaxInputSize(10))
	require.NoError(t, err)

	assert.NoError(t, Admit(c, 5, 8))
	assert.Error(t, Admit(c, 11, 5))
	assert.Error(t, Admit(c, 5, 11))
}

func TestAdmitStrictRequiresPaddingCoverage(t *testing.T) {
	// Admit's padding-coverage check is defense-in-depth: NewConfig's
	// Validate already guarantees PaddingSize >= MaxInputSize for any
	// config built through the normal constructor, so this test
	// constructs a Config directly to exercise the check on its own,
	// as if a config's PaddingSize were narrowed after construction.
	c := &Config{
		MaxInputSize:     100,
		PadInputs:        true,
		PaddingSize:      50,
		TimingProtection: Strict,
	}

	assert.NoError(t, Admit(c, 40, 30))
	assert.Error(t, Admit(c, 60, 10)) // 60 <= MaxInputSize(100) but > PaddingSize(50)
}

func TestTargetLength(t *testing.T) {
	c, err := NewConfig(WithMaxInputSize(1000), WithPadding(2048), WithTimingProtection(Strict))
	require.NoError(t, err)
	assert.Equal(t, 2048, TargetLength(c, 10, 2000))

	auto, err := NewConfig(WithMaxInputSize(1<<20), WithTimingProtection(Moderate))
	require.NoError(t, err)
	auto.PadInputs = true // simulate "padding enabled, auto size" in Moderate mode
	assert.Equal(t, 128, TargetLength(auto, 100, 90))
	assert.Equal(t, 1, TargetLength(auto, 0, 0))
}

func TestValidateByteRange(t *testing.T) {
	c, err := NewConfig(WithMaxInputSize(1000))
	require.NoError(t, err)

	assert.NoError(t, ValidateByteRange(c, []byte("hello\tworld\n")))
	assert.Error(t, ValidateByteRange(c, []byte{0x01, 0x02}))

	c.ValidateInputs = false
	assert.NoError(t, ValidateByteRange(c, []byte{0x01}))
}
