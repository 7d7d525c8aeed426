// Package scene wires the animation core to its collaborators.
//
// A [Scene] owns one particle field with its sway and one preview follower
// plus the custom cursor. [Scene.Setup] registers them with a
// frame.Scheduler, subscribes them to a pointer.Source and points their
// output at an injected [Renderer] and [Compositor]. The scene never creates
// a drawing surface itself.
//
// # Example
//
//	sched := frame.NewScheduler(cfg.FPS)
//	src := pointer.NewSource()
//	s := scene.New(cfg)
//	if err := s.Setup(sched, src, renderer, compositor); err != nil {
//		s.Teardown()
//		return err
//	}
//	defer s.Teardown()
//	go sched.Run(ctx)
//
// # Thread Safety
//
// Pointer moves may be published from any goroutine. Everything else,
// including ShowPreview and HidePreview, must run on the goroutine that steps
// the scheduler.
package scene
