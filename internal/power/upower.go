package power

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	upowerDest = "org.freedesktop.UPower"
	upowerPath = "/org/freedesktop/UPower"
)

// UPower asks the UPower daemon over the system bus.
type UPower struct {
	conn *dbus.Conn
}

func NewUPower() (*UPower, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}
	return &UPower{conn: conn}, nil
}

func (u *UPower) State(ctx context.Context) (State, error) {
	obj := u.conn.Object(upowerDest, dbus.ObjectPath(upowerPath))
	call := obj.CallWithContext(ctx, "org.freedesktop.DBus.Properties.Get", 0, upowerDest, "OnBattery")
	if call.Err != nil {
		return 0, fmt.Errorf("failed to read UPower.OnBattery: %w", call.Err)
	}
	var v dbus.Variant
	if err := call.Store(&v); err != nil {
		return 0, fmt.Errorf("decode UPower.OnBattery: %w", err)
	}
	onBattery, ok := v.Value().(bool)
	if !ok {
		return 0, fmt.Errorf("UPower.OnBattery has type %s, want bool", v.Signature())
	}
	if onBattery {
		return OnBattery, nil
	}
	return OnAC, nil
}

func (u *UPower) Close() error {
	return u.conn.Close()
}
