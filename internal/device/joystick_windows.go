//go:build windows

package device

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Windows implementation backed by the winmm joystick API.
// winmm reports up to 32 buttons and a single hat; the remaining
// buttons and hats in the Sample stay released, and Info says so.

const (
	maxPNameLen              = 32
	maxJoystickOEMVXDNameLen = 260

	joyErrNoError   = 0
	joyReturnAll    = 0xFF
	joyReturnPovCts = 0x200
	joyPovCentered  = 0xFFFF
	joyMaxDevices   = 16
	joyCapsHasPOV   = 0x10

	winmmButtons = 32
)

type joyinfoex struct {
	dwSize         uint32
	dwFlags        uint32
	dwXpos         uint32
	dwYpos         uint32
	dwZpos         uint32
	dwRpos         uint32
	dwUpos         uint32
	dwVpos         uint32
	dwButtons      uint32
	dwButtonNumber uint32
	dwPOV          uint32
	dwReserved1    uint32
	dwReserved2    uint32
}

type joycaps struct {
	wMid        uint16
	wPid        uint16
	szPname     [maxPNameLen]uint16
	wXmin       uint32
	wXmax       uint32
	wYmin       uint32
	wYmax       uint32
	wZmin       uint32
	wZmax       uint32
	wNumButtons uint32
	wPeriodMin  uint32
	wPeriodMax  uint32
	wRmin       uint32
	wRmax       uint32
	wUmin       uint32
	wUmax       uint32
	wVmin       uint32
	wVmax       uint32
	wCaps       uint32
	wMaxAxes    uint32
	wNumAxes    uint32
	wMaxButtons uint32
	szRegKey    [maxPNameLen]uint16
	szOEMVxD    [maxJoystickOEMVXDNameLen]uint16
}

var (
	winmm              = windows.NewLazySystemDLL("winmm.dll")
	procJoyGetNumDevs  = winmm.NewProc("joyGetNumDevs")
	procJoyGetDevCapsW = winmm.NewProc("joyGetDevCapsW")
	procJoyGetPosEx    = winmm.NewProc("joyGetPosEx")
)

// List returns every joystick slot winmm reports as attached.
func List() ([]Info, error) {
	if err := winmm.Load(); err != nil {
		return nil, fmt.Errorf("load winmm: %w", err)
	}

	r1, _, _ := procJoyGetNumDevs.Call()
	num := int(r1)
	if num > joyMaxDevices {
		num = joyMaxDevices
	}

	var devices []Info
	seen := make(map[[2]uint16]int)
	for id := 0; id < num; id++ {
		var caps joycaps
		ret, _, _ := procJoyGetDevCapsW.Call(uintptr(id), uintptr(unsafe.Pointer(&caps)), unsafe.Sizeof(caps))
		if ret != joyErrNoError {
			continue
		}
		// joyGetDevCaps succeeds for empty slots; a position read tells us if something is plugged in.
		if _, err := readPos(id); err != nil {
			continue
		}

		// szPname is often the driver name; prefer the DirectInput product name.
		name := oemName(caps.wMid, caps.wPid)
		if name == "" {
			name = syscall.UTF16ToString(caps.szPname[:])
		}
		if name == "" {
			name = fmt.Sprintf("Joystick %d", id+1)
		}

		info := Info{
			ID:      id,
			Name:    name,
			GUID:    ProductGUID(caps.wMid, caps.wPid),
			Buttons: min(int(caps.wNumButtons), winmmButtons),
		}
		if caps.wCaps&joyCapsHasPOV != 0 {
			info.POVs = 1
		}

		// Identical sticks share a vendor/product pair; the n-th one takes the n-th calibration slot.
		key := [2]uint16{caps.wMid, caps.wPid}
		if guids := instanceGUIDs(caps.wMid, caps.wPid); seen[key] < len(guids) {
			info.InstanceGUID = guids[seen[key]]
		}
		seen[key]++

		devices = append(devices, info)
	}
	return devices, nil
}

// Open opens the device whose instance or product GUID matches guid, falling back to a name match.
func Open(guid, name string) (Source, error) {
	devices, err := List()
	if err != nil {
		return nil, err
	}
	info, ok := matchInfo(devices, guid, name)
	if !ok {
		return nil, fmt.Errorf("guid %q name %q: %w", guid, name, ErrNotFound)
	}
	return &winmmSource{info: info}, nil
}

type winmmSource struct {
	info Info
}

func (s *winmmSource) Info() Info { return s.info }

func (s *winmmSource) Close() error { return nil }

func (s *winmmSource) Read() (Sample, error) {
	pos, err := readPos(s.info.ID)
	if err != nil {
		return Released(), err
	}

	sample := Released()
	for i := 0; i < winmmButtons; i++ {
		sample.Buttons[i] = pos.dwButtons&(1<<uint(i)) != 0
	}
	if pos.dwPOV != joyPovCentered && pos.dwPOV < POVFullCircle {
		sample.POV[0] = int(pos.dwPOV)
	}
	return sample, nil
}

func readPos(id int) (joyinfoex, error) {
	var info joyinfoex
	info.dwSize = uint32(unsafe.Sizeof(info))
	info.dwFlags = joyReturnAll | joyReturnPovCts
	ret, _, callErr := procJoyGetPosEx.Call(uintptr(id), uintptr(unsafe.Pointer(&info)))
	if ret != joyErrNoError {
		if callErr != syscall.Errno(0) {
			return info, fmt.Errorf("joyGetPosEx(%d): %w", id, callErr)
		}
		return info, errors.New("unable to read joystick state")
	}
	return info, nil
}
