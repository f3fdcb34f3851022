package gfx

import (
	"unsafe"

	"github.com/hubastard/hellogl/engine/logging"
)

// Numeric is any fixed-size element type a vertex or index buffer can hold.
type Numeric interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~float32
}

// UploadBuffer creates one buffer on target and fills it with data for static draw.
// The buffer is left bound to target.
func UploadBuffer[T Numeric](dev Device, target BufferTarget, data []T) (BufferHandle, error) {
	b := dev.GenBuffer()
	if b == 0 {
		return 0, errorf(KindResourceCreation, target.String()+" buffer", dev.Error(), "couldn't create buffer")
	}
	dev.BindBuffer(target, b)
	dev.BufferData(target, bytesOf(data), StaticDraw)
	logging.Logger().Debug("uploaded buffer", "target", target.String(), "handle", b, "bytes", len(data)*sizeOf[T]())
	return b, nil
}

func sizeOf[T Numeric]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// bytesOf views data as its native-endian bytes without copying.
func bytesOf[T Numeric](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*sizeOf[T]())
}
