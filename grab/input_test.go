package grab

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	valid     bool
	analog    float64
	hasAnalog bool
	button    bool
	hasButton bool
}

func (d *fakeDevice) Valid() bool             { return d.valid }
func (d *fakeDevice) Analog() (float64, bool) { return d.analog, d.hasAnalog }
func (d *fakeDevice) Button() (bool, bool)    { return d.button, d.hasButton }

func TestReadGripDegradesToZero(t *testing.T) {
	cases := []struct {
		name    string
		src     GripSource
		want    float64
		wantErr error
	}{
		{"nil_source", nil, 0, ErrDeviceUnavailable},
		{"nil_func", GripFunc(nil), 0, ErrDeviceUnavailable},
		{"error", GripFunc(func() (float64, error) { return 0.9, ErrNoGripFeature }), 0, ErrNoGripFeature},
		{"nan", GripFunc(func() (float64, error) { return math.NaN(), nil }), 0, nil},
		{"above_one", GripFunc(func() (float64, error) { return 1.7, nil }), 1, nil},
		{"below_zero", GripFunc(func() (float64, error) { return -0.3, nil }), 0, nil},
		{"in_range", GripFunc(func() (float64, error) { return 0.42, nil }), 0.42, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := ReadGrip(c.src)
			assert.Equal(t, c.want, v)
			if c.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, c.wantErr)
			}
		})
	}
}

func TestDeviceGripRelocates(t *testing.T) {
	var dev *fakeDevice
	lookups := 0
	src := NewDeviceGrip(func() Device {
		lookups++
		if dev == nil {
			return nil
		}
		return dev
	})

	v, err := ReadGrip(src)
	assert.Zero(t, v)
	assert.ErrorIs(t, err, ErrDeviceUnavailable)

	dev = &fakeDevice{valid: false}
	_, err = ReadGrip(src)
	assert.ErrorIs(t, err, ErrDeviceUnavailable)

	dev.valid = true
	dev.analog, dev.hasAnalog = 0.75, true
	v, err = ReadGrip(src)
	require.NoError(t, err)
	assert.Equal(t, 0.75, v)

	before := lookups
	_, _ = ReadGrip(src)
	assert.Equal(t, before, lookups, "a valid device is not looked up again")

	dev.valid = false
	_, err = ReadGrip(src)
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
	assert.Greater(t, lookups, before)
}

func TestDeviceGripButtonFallback(t *testing.T) {
	dev := &fakeDevice{valid: true, hasButton: true}
	src := NewDeviceGrip(func() Device { return dev })

	v, err := src.Grip()
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	dev.button = true
	v, err = src.Grip()
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	dev.hasButton = false
	_, err = src.Grip()
	assert.ErrorIs(t, err, ErrNoGripFeature)

	var none *DeviceGrip
	_, err = none.Grip()
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
	_, err = NewDeviceGrip(nil).Grip()
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
}

func TestLegacyAxis(t *testing.T) {
	cases := []struct {
		name    string
		axis    LegacyAxis
		want    float64
		wantErr bool
	}{
		{"unconfigured", LegacyAxis{}, 0, true},
		{"no_name", LegacyAxis{Read: func(string) (float64, error) { return 1, nil }}, 0, true},
		{
			name: "reader_error",
			axis: LegacyAxis{Name: "XRI_Right_Grip", Read: func(string) (float64, error) {
				return 0.6, errors.New("input axis XRI_Right_Grip is not setup")
			}},
			wantErr: true,
		},
		{
			name: "reader_panics",
			axis: LegacyAxis{Name: "XRI_Right_Grip", Read: func(string) (float64, error) {
				panic("axis not configured")
			}},
			wantErr: true,
		},
		{
			name: "reads_value",
			axis: LegacyAxis{Name: "XRI_Right_Grip", Read: func(name string) (float64, error) {
				if name != "XRI_Right_Grip" {
					return 0, errors.New("wrong axis")
				}
				return 0.3, nil
			}},
			want: 0.3,
		},
		{
			name: "binary_button",
			axis: LegacyAxis{Name: "grip", Read: ButtonAxis(func(string) (bool, error) { return true, nil })},
			want: 1,
		},
		{
			name:    "binary_nil_reader",
			axis:    LegacyAxis{Name: "grip", Read: ButtonAxis(nil)},
			wantErr: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := ReadGrip(c.axis)
			assert.Equal(t, c.want, v)
			if c.wantErr {
				assert.ErrorIs(t, err, ErrLegacyAxis)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
