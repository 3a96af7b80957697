package event

import "encoding/json"

// Gesture names emitted by the publisher. Other names may appear; they are
// valid events that simply have no default binding.
const (
	GestureRotateRL   = "Rotate RL"
	GestureRotateLR   = "Rotate LR"
	GestureRotateR    = "Rotate R"
	GestureRotateL    = "Rotate L"
	GestureCircleR    = "Circle R"
	GestureCircleL    = "Circle L"
	GestureSwipeR     = "Swipe R"
	GestureSwipeL     = "Swipe L"
	GestureSwipeUp    = "Swipe Up"
	GestureSwipeDown  = "Swipe Down"
	GestureWirlR      = "Wirl R"
	GestureWirlL      = "Wirl L"
	GestureEartouchR  = "Eartouch R"
	GestureEartouchL  = "Eartouch L"
	GestureChesttouch = "Chesttouch"
	GestureCheckMark  = "Check Mark"
	GestureXMark      = "X Mark"
	GestureTap        = "Tap"
	GestureDoubleTap  = "DoubleTap"
)

// Vocabulary lists the known gesture names in a stable order.
var Vocabulary = []string{
	GestureRotateRL, GestureRotateLR, GestureRotateR, GestureRotateL,
	GestureCircleR, GestureCircleL,
	GestureSwipeR, GestureSwipeL, GestureSwipeUp, GestureSwipeDown,
	GestureWirlR, GestureWirlL,
	GestureEartouchR, GestureEartouchL, GestureChesttouch,
	GestureCheckMark, GestureXMark,
	GestureTap, GestureDoubleTap,
}

// KnownGesture reports whether name is part of the publisher vocabulary.
func KnownGesture(name string) bool {
	for _, g := range Vocabulary {
		if g == name {
			return true
		}
	}
	return false
}

// Local broadcast identifiers. A broadcast carries the JSON payload under
// ExtraJSON plus the event type (ExtraType) or log level (ExtraLevel).
const (
	ActionEvent = "de.kinemic.publisher.ACTION.EVENT"
	ActionLog   = "de.kinemic.publisher.ACTION.LOG"

	ExtraType  = "type"
	ExtraLevel = "level"
	ExtraJSON  = "json"
)

// RequestOrientationReset is the only request the publisher accepts. It
// resets the airmouse reference orientation.
const RequestOrientationReset = "OrientationReset"

// EncodeOrientationReset returns {"type":"OrientationReset","payload":null}.
func EncodeOrientationReset() []byte {
	b, _ := json.Marshal(struct {
		Type    string `json:"type"`
		Payload any    `json:"payload"`
	}{Type: RequestOrientationReset})
	return b
}
