package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want Event
	}{
		{
			name: "gesture",
			in:   `{"type":"Gesture","parameters":{"name":"Swipe R"}}`,
			want: Gesture{Name: "Swipe R"},
		},
		{
			name: "writing",
			in:   `{"type":"Writing","parameters":{"vocabulary":"digits","hypothesis":"42","final":true}}`,
			want: Writing{Vocabulary: "digits", Hypothesis: "42", IsFinal: true},
		},
		{
			name: "writing segment",
			in:   `{"type":"WritingSegment","parameters":{"started":true}}`,
			want: WritingSegment{Started: true},
		},
		{
			name: "activation",
			in:   `{"type":"Activation","parameters":{"active":false}}`,
			want: Activation{Active: false},
		},
		{
			name: "heartbeat",
			in:   `{"type":"Heartbeat","parameters":{"active":true,"flags":3,"stream":"tcp://...","sensor":"X1","last":2}}`,
			want: Heartbeat{Active: true, Flags: 3, Stream: "tcp://...", Sensor: "X1", LastSeconds: 2},
		},
		{
			name: "heartbeat flags wider than 32 bits",
			in:   `{"type":"Heartbeat","parameters":{"active":false,"flags":1099511627776,"stream":"","sensor":"","last":0}}`,
			want: Heartbeat{Flags: 1 << 40},
		},
		{
			name: "mouse move",
			in:   `{"type":"MouseEvent","parameters":{"type":"move","dx":1.5,"dy":-2,"down":true}}`,
			want: MouseEvent{Kind: MouseMove, DX: 1.5, DY: -2, PalmVertical: true},
		},
		{
			name: "mouse toggle explicit",
			in:   `{"type":"MouseEvent","parameters":{"type":"toggle"}}`,
			want: MouseEvent{Kind: MouseToggle},
		},
		{
			name: "mouse toggle legacy alias",
			in:   `{"type":"MouseToggle","parameters":{}}`,
			want: MouseEvent{Kind: MouseToggle},
		},
		{
			name: "mouse toggle from null payload",
			in:   `{"type":"MouseEvent","parameters":null}`,
			want: MouseEvent{Kind: MouseToggle},
		},
		{
			name: "null inside string literal untouched",
			in:   `{"type":"Gesture","parameters":{"name":"null"}}`,
			want: Gesture{Name: "null"},
		},
		{
			name: "unknown gesture name is still valid",
			in:   `{"type":"Gesture","parameters":{"name":"Backflip"}}`,
			want: Gesture{Name: "Backflip"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Decode([]byte(tt.in))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeEncodeDecodeIsIdentity(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`{"type":"Gesture","parameters":{"name":"Rotate RL"}}`,
		`{"type":"Writing","parameters":{"vocabulary":"abc","hypothesis":"","final":false}}`,
		`{"type":"WritingSegment","parameters":{"started":false}}`,
		`{"type":"Activation","parameters":{"active":true}}`,
		`{"type":"Heartbeat","parameters":{"active":false,"flags":0,"stream":"","sensor":"","last":0}}`,
		`{"type":"MouseEvent","parameters":{"type":"move","dx":0.25,"dy":3,"down":false}}`,
		`{"type":"MouseToggle","parameters":null}`,
	}

	for _, in := range inputs {
		first, err := Decode([]byte(in))
		require.NoError(t, err, in)

		data, err := Marshal(first)
		require.NoError(t, err, in)

		second, err := Decode(data)
		require.NoError(t, err, string(data))
		require.Equal(t, first, second, in)
	}
}

func TestDecodeUnknownTypeForAnyParameters(t *testing.T) {
	t.Parallel()

	shapes := []string{
		`{"type":"Swipe","parameters":{"name":"Swipe R"}}`,
		`{"type":"Swipe","parameters":{}}`,
		`{"type":"Swipe","parameters":null}`,
		`{"type":"Swipe","parameters":[1,2,3]}`,
		`{"type":"Swipe","parameters":"text"}`,
		`{"type":"Swipe"}`,
		`{"type":"","parameters":{}}`,
		`{"type":"gesture","parameters":{"name":"Tap"}}`,
	}

	for _, in := range shapes {
		_, err := Decode([]byte(in))
		require.Error(t, err, in)
		require.True(t, errors.Is(err, ErrUnknownType), "%s: %v", in, err)
		require.False(t, errors.Is(err, ErrMalformedField), in)

		var de *DecodeError
		require.True(t, errors.As(err, &de))
		require.Equal(t, UnknownType, de.Kind)
	}
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		field string
	}{
		{"missing type", `{"parameters":{"name":"Tap"}}`, "type"},
		{"type not a string", `{"type":7,"parameters":{}}`, "type"},
		{"missing parameters", `{"type":"Gesture"}`, "parameters"},
		{"parameters not object", `{"type":"Gesture","parameters":[]}`, "parameters"},
		{"missing gesture name", `{"type":"Gesture","parameters":{}}`, "name"},
		{"null payload has no name", `{"type":"Gesture","parameters":null}`, "name"},
		{"name wrong type", `{"type":"Gesture","parameters":{"name":3}}`, "name"},
		{"writing final as string", `{"type":"Writing","parameters":{"vocabulary":"a","hypothesis":"b","final":"yes"}}`, "final"},
		{"activation missing", `{"type":"Activation","parameters":{}}`, "active"},
		{"segment null field", `{"type":"WritingSegment","parameters":{"started":null}}`, "started"},
		{"heartbeat fractional flags", `{"type":"Heartbeat","parameters":{"active":true,"flags":3.5,"stream":"s","sensor":"x","last":1}}`, "flags"},
		{"heartbeat negative last", `{"type":"Heartbeat","parameters":{"active":true,"flags":1,"stream":"s","sensor":"x","last":-1}}`, "last"},
		{"heartbeat missing sensor", `{"type":"Heartbeat","parameters":{"active":true,"flags":1,"stream":"s","last":1}}`, "sensor"},
		{"mouse unknown kind", `{"type":"MouseEvent","parameters":{"type":"drag"}}`, "type"},
		{"mouse move missing dy", `{"type":"MouseEvent","parameters":{"type":"move","dx":1,"down":false}}`, "dy"},
		{"mouse move missing down", `{"type":"MouseEvent","parameters":{"type":"move","dx":1,"dy":1}}`, "down"},
		{"invalid json", `{"type":"Gesture",`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev, err := Decode([]byte(tt.in))
			require.Nil(t, ev)
			require.True(t, errors.Is(err, ErrMalformedField), "%v", err)

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			require.Equal(t, tt.field, de.Field)
		})
	}
}

func TestDecodeErrorMessage(t *testing.T) {
	_, err := Decode([]byte(`{"type":"Heartbeat","parameters":{"active":true}}`))
	require.EqualError(t, err, `decode Heartbeat: malformed field "flags": missing`)

	_, err = Decode([]byte(`{"type":"Nope","parameters":{}}`))
	require.EqualError(t, err, `decode event: unknown type "Nope"`)
}

func TestEncodeCanonicalType(t *testing.T) {
	msg, err := Encode(MouseEvent{Kind: MouseToggle})
	require.NoError(t, err)
	require.Equal(t, "MouseEvent", msg.Type)
	require.JSONEq(t, `{"type":"toggle"}`, string(msg.Parameters))

	msg, err = Encode(Gesture{Name: "Swipe R"})
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"Swipe R"}`, string(msg.Parameters))

	_, err = Encode(nil)
	require.Error(t, err)
}

func TestDecodeLog(t *testing.T) {
	t.Parallel()

	l, err := DecodeLog([]byte(`{"parameters":{"who":"sensor","level":"warn","message":"battery low","timestamp":1700000000123}}`))
	require.NoError(t, err)
	require.Equal(t, Log{Who: "sensor", Level: "warn", Message: "battery low", Timestamp: 1700000000123}, l)
	require.Equal(t, int64(1700000000123), l.Time().UnixMilli())

	data, err := MarshalLog(l)
	require.NoError(t, err)
	again, err := DecodeLog(data)
	require.NoError(t, err)
	require.Equal(t, l, again)

	_, err = DecodeLog([]byte(`{"parameters":{"who":"s","level":"fatal","message":"m","timestamp":1}}`))
	require.True(t, errors.Is(err, ErrMalformedField))

	_, err = DecodeLog([]byte(`{"parameters":{"who":"s","level":"info","message":"m"}}`))
	require.True(t, errors.Is(err, ErrMalformedField))

	_, err = DecodeLog([]byte(`{}`))
	require.True(t, errors.Is(err, ErrMalformedField))
}

func TestOrientationResetRequest(t *testing.T) {
	require.Equal(t, `{"type":"OrientationReset","payload":null}`, string(EncodeOrientationReset()))
}

func TestWireNames(t *testing.T) {
	require.Equal(t, []string{"MouseEvent", "MouseToggle"}, WireNames(TypeMouseEvent))
	require.Equal(t, []string{"Gesture"}, WireNames(TypeGesture))
}

func TestKnownGesture(t *testing.T) {
	require.True(t, KnownGesture(GestureSwipeR))
	require.True(t, KnownGesture("DoubleTap"))
	require.False(t, KnownGesture("swipe r"))
}
