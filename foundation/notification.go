package foundation

import (
	"runtime"

	"github.com/chazu/objcbridge/objc"
)

// NSNotification is an owned reference to a notification.
type NSNotification struct {
	b   *objc.Bridge
	ref *objc.Ref
}

// NotificationType is the type identity of NSNotification.
func NotificationType(b *objc.Bridge) objc.Kind {
	return b.Kind("NSNotification")
}

// NewNotification creates a notification named name about object.
func NewNotification(b *objc.Bridge, name string, object objc.Handle) (*NSNotification, error) {
	str, err := NewString(b, name)
	if err != nil {
		return nil, err
	}
	defer str.Release()

	obj, err := objc.UnsafeSendClass[objc.Handle](b, "NSNotification", "alloc")
	if err != nil {
		return nil, err
	}
	obj = objc.UnsafeSend[objc.Handle](b, obj, "initWithName:object:userInfo:", str.Handle(), object, objc.Nil)
	return &NSNotification{b: b, ref: b.Adopt(obj)}, nil
}

// NotificationFromHandle retains a borrowed notification handle.
func NotificationFromHandle(b *objc.Bridge, h objc.Handle) (*NSNotification, error) {
	ref, err := b.TryFrom(h, NotificationType(b))
	if err != nil {
		return nil, err
	}
	return &NSNotification{b: b, ref: ref}, nil
}

// Handle borrows the underlying handle. It is valid while n is reachable;
// see objc.Ref.Raw.
func (n *NSNotification) Handle() objc.Handle { return n.ref.Raw() }

// Release gives up the notification.
func (n *NSNotification) Release() { n.ref.Release() }

// Name returns the notification name.
func (n *NSNotification) Name() (string, error) {
	// the name is borrowed from n until StringFromHandle copies it
	defer runtime.KeepAlive(n)
	h := objc.SendRef[objc.Handle](n.b, n.ref, "name")
	if h.IsNil() {
		return "", nil
	}
	s, err := StringFromHandle(n.b, h)
	if err != nil {
		return "", err
	}
	defer s.Release()
	return s.String(), nil
}

// Object returns the object the notification is about, borrowed. It is
// valid while n is reachable.
func (n *NSNotification) Object() objc.Handle {
	return objc.SendRef[objc.Handle](n.b, n.ref, "object")
}
