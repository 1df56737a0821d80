package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"voxeldraw/internal/graphics"
)

const (
	moveSpeed        = 12.0
	mouseSensitivity = 0.1
)

// inputState holds a free-fly camera's input: WASD to move, mouse to
// look, O to toggle the top-down orthographic view, Escape to quit,
// P to dump the frame profile.
type inputState struct {
	window      *glfw.Window
	lastX       float64
	lastY       float64
	firstMouse  bool
	dumpProfile bool
	orthoView   bool

	yawDelta   float32
	pitchDelta float32
}

func newInputState(window *glfw.Window) *inputState {
	s := &inputState{window: window, firstMouse: true}

	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if s.firstMouse {
			s.lastX, s.lastY = xpos, ypos
			s.firstMouse = false
			return
		}
		s.yawDelta += float32(xpos-s.lastX) * mouseSensitivity
		s.pitchDelta += float32(s.lastY-ypos) * mouseSensitivity
		s.lastX, s.lastY = xpos, ypos
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyP:
			s.dumpProfile = true
		case glfw.KeyO:
			s.orthoView = !s.orthoView
		}
	})

	return s
}

// apply moves the camera by the frame's accumulated input.
func (s *inputState) apply(camera *graphics.Camera, dt float32) {
	camera.Yaw += s.yawDelta
	camera.Pitch += s.pitchDelta
	s.yawDelta, s.pitchDelta = 0, 0

	if camera.Pitch > 89 {
		camera.Pitch = 89
	}
	if camera.Pitch < -89 {
		camera.Pitch = -89
	}

	front := camera.Front()
	right := front.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	var move mgl32.Vec3
	if s.window.GetKey(glfw.KeyW) == glfw.Press {
		move = move.Add(front)
	}
	if s.window.GetKey(glfw.KeyS) == glfw.Press {
		move = move.Sub(front)
	}
	if s.window.GetKey(glfw.KeyD) == glfw.Press {
		move = move.Add(right)
	}
	if s.window.GetKey(glfw.KeyA) == glfw.Press {
		move = move.Sub(right)
	}
	if move.Len() > 0 {
		camera.Position = camera.Position.Add(move.Normalize().Mul(moveSpeed * dt))
	}
}
