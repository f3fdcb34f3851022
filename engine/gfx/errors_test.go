package gfx_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hubastard/hellogl/engine/gfx"
)

func TestError_Is(t *testing.T) {
	cause := errors.New("disk on fire")
	err := &gfx.Error{Kind: gfx.KindAssetLoad, Resource: "a.bmp", Detail: "couldn't load", Err: cause}

	assert.ErrorIs(t, err, gfx.ErrAssetLoad)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, gfx.ErrCompile)
	assert.Equal(t, "a.bmp: couldn't load: disk on fire", err.Error())
	assert.Equal(t, "asset load failure", gfx.KindAssetLoad.String())
}

func TestError_NoCause(t *testing.T) {
	// A driver that refuses an object without queueing a GL error leaves Err nil.
	err := &gfx.Error{Kind: gfx.KindResourceCreation, Resource: "vertex array object", Detail: "couldn't create"}

	assert.Equal(t, "vertex array object: couldn't create", err.Error())
	assert.ErrorIs(t, err, gfx.ErrResourceCreation)
	assert.Equal(t, []error{gfx.ErrResourceCreation}, err.Unwrap())
}
