// Package haze is a small retained-mode 3D scene layer for [Ebitengine].
//
// Haze provides a perspective camera, box geometry, Phong-lit meshes, a
// directional light, distance fog, and a live parameter panel bound to
// getter/setter accessors. Triangles are transformed, lit, fogged and sorted on
// the CPU and submitted with a single DrawTriangles call per frame.
//
// # Quick start
//
//	scene := haze.NewScene()
//	scene.Fog = haze.NewFog(haze.MustParseColor("lightblue"), 1, 2)
//	scene.Background = scene.Fog.Color
//
//	cam := haze.NewPerspectiveCamera(75, 2, 0.1, 5)
//	cam.Position = mgl64.Vec3{0, 0, 2}
//
//	box := haze.NewBoxGeometry(1, 1, 1)
//	cube := haze.NewMesh("cube", box, haze.NewPhongMaterial(haze.HexColor(0x44aa88)))
//	scene.Add(cube)
//
//	app := haze.NewApp(scene, cam)
//	haze.Run(app, haze.RunConfig{Title: "Fog", Width: 640, Height: 480})
//
// # Fog helper
//
// [FogHelper] exposes near, far and color accessors over a scene's fog and
// background. Setting near raises far when needed, setting far lowers near
// when needed, and setting the color writes both the fog color and the
// background color. Bind it to a [Panel] to edit fog live:
//
//	helper := haze.NewFogHelper(scene.Fog, &scene.Background)
//	app.Panel().Add("near", helper.Near, helper.SetNear, 1, 2).Listen()
//	app.Panel().Add("far", helper.Far, helper.SetFar, 1, 2).Listen()
//	app.Panel().AddColor("color", helper.Color, helper.SetColor).Listen()
//
// # Frame loop
//
// [App] implements [ebiten.Game]. Each Draw polls [ResizeToDisplaySize] once,
// updates the camera aspect when the drawing buffer changed, runs the frame
// callback set with [App.SetFrameFunc], renders the scene and draws the panel.
//
// [Ebitengine]: https://ebitengine.org
package haze
