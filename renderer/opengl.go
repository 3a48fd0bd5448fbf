package renderer

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/Selkomark/Blackhole-Simulation/physics"
	"github.com/Selkomark/Blackhole-Simulation/scene"
	"github.com/Selkomark/Blackhole-Simulation/types"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	// Coefficients for converting delta cursor movements to yaw/pitch orbit angles.
	mouseSensitivityX float32 = 0.005
	mouseSensitivityY float32 = 0.005

	// Scroll-wheel zoom speed and orbit radius bounds. The lower bound keeps
	// the camera outside the photon-heavy region where frames get expensive.
	zoomSpeed     float32 = 1.0
	minOrbitGap   float32 = 6.0
	maxOrbitRange float32 = 60.0

	// Pitch is clamped short of the poles to keep the orbit basis stable.
	maxPitch float32 = 1.45
)

// An interactive opengl viewer: an external collaborator that supplies a
// camera pose and time value each frame, invokes Render, and blits the
// returned pixels. All rendering semantics live in the attached Renderer.
type interactiveGLViewer struct {
	*Renderer

	window *glfw.Window
	texFbo uint32

	// Orbit camera state.
	yaw    float32
	pitch  float32
	radius float32
	fov    float32

	lastCursorPos types.Vec2
	mousePressed  bool

	colorMode      int32
	colorIntensity float32
	clock          *sceneClock
}

// Interactive opens a window displaying the renderer's output and runs the
// render loop until the window is closed. Must be called from the main OS
// thread (callers use runtime.LockOSThread).
func Interactive(r *Renderer, title string) error {
	frameW, frameH := r.FrameDims()

	v := &interactiveGLViewer{
		Renderer:       r,
		yaw:            0,
		pitch:          0.15,
		radius:         20.0,
		fov:            60.0,
		colorMode:      physics.ColorModeBlue,
		colorIntensity: 1.0,
		clock:          newSceneClock(time.Now()),
	}

	if err := v.initGL(title, frameW, frameH); err != nil {
		return err
	}
	defer glfw.Terminate()

	return v.loop(frameW, frameH)
}

func (v *interactiveGLViewer) initGL(title string, frameW, frameH uint32) error {
	var err error
	if err = glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %s", err.Error())
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	v.window, err = glfw.CreateWindow(int(frameW), int(frameH), title, nil, nil)
	if err != nil {
		return fmt.Errorf("could not create opengl window: %s", err.Error())
	}
	v.window.MakeContextCurrent()

	if err = gl.Init(); err != nil {
		return fmt.Errorf("could not init opengl: %s", err.Error())
	}

	// Setup texture for image data
	var fbTexture uint32
	gl.GenTextures(1, &fbTexture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fbTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(frameW), int32(frameH), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	// Attach texture to FBO
	gl.GenFramebuffers(1, &v.texFbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, v.texFbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fbTexture, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	// Bind event callbacks
	v.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	v.window.SetKeyCallback(v.onKeyEvent)
	v.window.SetMouseButtonCallback(v.onMouseEvent)
	v.window.SetCursorPosCallback(v.onCursorPosEvent)
	v.window.SetScrollCallback(v.onScrollEvent)

	return nil
}

func (v *interactiveGLViewer) loop(frameW, frameH uint32) error {
	for !v.window.ShouldClose() {
		glfw.PollEvents()

		elapsed := v.clock.Tick(time.Now())

		cam := scene.Orbit(types.Vec3{}, v.yaw, v.pitch, v.radius, v.fov)
		if err := v.Render(cam, elapsed, v.colorMode, v.colorIntensity); err != nil {
			return err
		}

		// Update texture with frame data
		pixels := v.Pixels()
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(frameW), int32(frameH), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))

		// Copy texture data to framebuffer
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, v.texFbo)
		gl.BlitFramebuffer(0, 0, int32(frameW), int32(frameH), 0, int32(frameH), int32(frameW), 0, gl.COLOR_BUFFER_BIT, gl.LINEAR)
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

		v.window.SwapBuffers()
	}
	return nil
}

func (v *interactiveGLViewer) onKeyEvent(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}

	switch key {
	case glfw.KeyEscape:
		v.window.SetShouldClose(true)
	case glfw.Key1:
		v.colorMode = physics.ColorModeBlue
	case glfw.Key2:
		v.colorMode = physics.ColorModeOrange
	case glfw.Key3:
		v.colorMode = physics.ColorModeRed
	case glfw.KeyMinus:
		v.colorIntensity *= 0.9
		if v.colorIntensity < 0.1 {
			v.colorIntensity = 0.1
		}
	case glfw.KeyEqual:
		v.colorIntensity *= 1.1
		if v.colorIntensity > 10 {
			v.colorIntensity = 10
		}
	case glfw.KeySpace:
		v.clock.Toggle()
	}
}

func (v *interactiveGLViewer) onMouseEvent(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mod glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}

	if action == glfw.Press {
		xPos, yPos := w.GetCursorPos()
		v.lastCursorPos[0], v.lastCursorPos[1] = float32(xPos), float32(yPos)
		v.mousePressed = true
	} else {
		v.mousePressed = false
	}
}

func (v *interactiveGLViewer) onCursorPosEvent(w *glfw.Window, xPos, yPos float64) {
	if !v.mousePressed {
		return
	}

	// Calculate delta movement and apply mouse sensitivity
	newPos := types.Vec2{float32(xPos), float32(yPos)}
	deltaX := (v.lastCursorPos[0] - newPos[0]) * mouseSensitivityX
	deltaY := (v.lastCursorPos[1] - newPos[1]) * mouseSensitivityY
	v.lastCursorPos = newPos

	v.yaw -= deltaX
	v.pitch += deltaY
	if v.pitch > maxPitch {
		v.pitch = maxPitch
	}
	if v.pitch < -maxPitch {
		v.pitch = -maxPitch
	}
}

func (v *interactiveGLViewer) onScrollEvent(w *glfw.Window, xOff, yOff float64) {
	v.radius -= float32(yOff) * zoomSpeed
	if v.radius < minOrbitGap {
		v.radius = minOrbitGap
	}
	if v.radius > maxOrbitRange {
		v.radius = maxOrbitRange
	}
}
