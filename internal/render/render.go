package render

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"space-scroll/internal/logger"
	"space-scroll/internal/scene"
)

// gpuTexture is an uploaded texture slot. version tracks scene.Texture so a refilled slot is re-uploaded.
type gpuTexture struct {
	tex     rl.Texture2D
	version int
}

// Renderer draws a scene.Scene with raylib. GPU resources are created lazily on first use so that
// they are allocated after the window/OpenGL context exists. Render never writes to the scene.
type Renderer struct {
	log       *logger.Logger
	shaders   *shaderSet
	meshes    map[scene.Geometry]rl.Mesh
	materials map[*scene.Material]rl.Material
	textures  map[*scene.Texture]gpuTexture
	// whiteTex is raylib's 1x1 default texture, bound while a map slot is still empty.
	whiteTex rl.Texture2D

	lights lightSet
}

// New returns a renderer with nothing uploaded yet.
func New(log *logger.Logger) *Renderer {
	return &Renderer{
		log:       log,
		meshes:    make(map[scene.Geometry]rl.Mesh),
		materials: make(map[*scene.Material]rl.Material),
		textures:  make(map[*scene.Texture]gpuTexture),
	}
}

// Render draws every object in the scene graph from the scene camera.
// Must be called between BeginDrawing and EndDrawing.
func (r *Renderer) Render(s *scene.Scene) {
	if r.shaders == nil {
		r.shaders = loadShaders()
		def := rl.LoadMaterialDefault()
		if albedo := def.GetMap(rl.MapAlbedo); albedo != nil {
			r.whiteTex = albedo.Texture
		}
	}
	r.lights.collect(s)

	cam := Camera(s.Camera)
	rl.BeginMode3D(cam)
	for _, m := range s.Graph.Meshes() {
		r.drawMesh(m, cam.Position)
	}
	rl.EndMode3D()
}

// Camera converts the scene camera to a raylib camera. raylib takes the aspect ratio from the screen.
func Camera(c *scene.Camera) rl.Camera3D {
	pos, target, up := c.Position, c.Target(), c.Up()
	return rl.Camera3D{
		Position:   rl.NewVector3(pos.X, pos.Y, pos.Z),
		Target:     rl.NewVector3(target.X, target.Y, target.Z),
		Up:         rl.NewVector3(up.X, up.Y, up.Z),
		Fovy:       c.Fov,
		Projection: rl.CameraPerspective,
	}
}

// modelMatrix applies scale, then the XYZ Euler rotation (Z first), then translation.
func modelMatrix(g scene.Geometry, t scene.Transform) rl.Matrix {
	sx := float32(1)
	if g.Inverted {
		sx = -1
	}
	m := rl.MatrixScale(sx, 1, 1)
	m = rl.MatrixMultiply(m, rl.MatrixRotateZ(t.Rotation.Z))
	m = rl.MatrixMultiply(m, rl.MatrixRotateY(t.Rotation.Y))
	m = rl.MatrixMultiply(m, rl.MatrixRotateX(t.Rotation.X))
	return rl.MatrixMultiply(m, rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z))
}

// mesh returns the GPU mesh for g, generating it on first use. Meshes are shared by equal geometries.
func (r *Renderer) mesh(g scene.Geometry) rl.Mesh {
	if m, ok := r.meshes[g]; ok {
		return m
	}
	var m rl.Mesh
	switch g.Kind {
	case scene.GeometrySphere:
		// raylib rings run pole to pole (height), slices around the axis (width).
		m = rl.GenMeshSphere(g.Radius, g.HeightSegments, g.WidthSegments)
		rl.GenMeshTangents(&m)
	case scene.GeometryTorus:
		// raylib takes the tube as a fraction of the ring radius and the overall diameter.
		ratio := float32(1)
		if g.Radius > 0 {
			ratio = g.Tube / g.Radius
		}
		m = rl.GenMeshTorus(ratio, 2*g.Radius, g.RadialSegments, g.TubularSegments)
	case scene.GeometryBox:
		m = rl.GenMeshCube(g.Width, g.Height, g.Depth)
	}
	r.meshes[g] = m
	return m
}

// texture returns the uploaded texture for slot, uploading (or re-uploading) it when its image changed.
// ok is false while the slot is empty or the upload failed.
func (r *Renderer) texture(slot *scene.Texture) (rl.Texture2D, bool) {
	if slot == nil {
		return rl.Texture2D{}, false
	}
	img, version, ok := slot.Image()
	if !ok {
		return rl.Texture2D{}, false
	}
	cached, seen := r.textures[slot]
	if seen && cached.version == version {
		return cached.tex, rl.IsTextureValid(cached.tex)
	}
	if seen && rl.IsTextureValid(cached.tex) {
		rl.UnloadTexture(cached.tex)
	}

	cpu := rl.NewImageFromImage(img)
	var tex rl.Texture2D
	if slot.Cube {
		tex = rl.LoadTextureCubemap(cpu, rl.CubemapLayoutLineHorizontal)
	} else {
		tex = rl.LoadTextureFromImage(cpu)
		rl.GenTextureMipmaps(&tex)
		rl.SetTextureFilter(tex, rl.FilterTrilinear)
	}
	rl.UnloadImage(cpu)

	r.textures[slot] = gpuTexture{tex: tex, version: version}
	if !rl.IsTextureValid(tex) {
		r.log.Logf("upload %s: texture rejected by GPU", slot.Name)
		return tex, false
	}
	r.log.Logf("uploaded %s (%dx%d)", slot.Name, tex.Width, tex.Height)
	return tex, true
}

// material returns the raylib material for m, creating it on first use. Shader and textures are
// bound per draw because texture slots fill in after construction.
func (r *Renderer) material(m *scene.Material) *rl.Material {
	mtl, ok := r.materials[m]
	if !ok {
		mtl = rl.LoadMaterialDefault()
		r.materials[m] = mtl
	}
	return &mtl
}

func (r *Renderer) drawMesh(m *scene.Mesh, viewPos rl.Vector3) {
	if m.Material == nil {
		return
	}
	mat := m.Material
	mtl := r.material(mat)
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(mat.Color.R, mat.Color.G, mat.Color.B, mat.Color.A)
	}

	mapTex, hasMap := r.texture(mat.Map)
	if hasMap {
		rl.SetMaterialTexture(mtl, rl.MapAlbedo, mapTex)
	} else {
		rl.SetMaterialTexture(mtl, rl.MapAlbedo, r.whiteTex)
	}

	view := [3]float32{viewPos.X, viewPos.Y, viewPos.Z}
	switch {
	case mat.Kind == scene.MaterialBasic && m.Geometry.Inverted && hasMap:
		mtl.Shader = r.shaders.equirect
		r.shaders.setVec3(mtl.Shader, "origin", [3]float32{m.Position.X, m.Position.Y, m.Position.Z})
	case mat.Kind == scene.MaterialBasic:
		mtl.Shader = r.shaders.basic
	default:
		r.bindStandard(mtl, mat, hasMap, view)
	}

	transform := modelMatrix(m.Geometry, m.Transform)
	inside := mat.Side == scene.BackSide
	if inside {
		rl.DisableBackfaceCulling()
		rl.DisableDepthMask()
	}
	if mat.Wireframe {
		rl.EnableWireMode()
	}
	rl.DrawMesh(r.mesh(m.Geometry), *mtl, transform)
	if mat.Wireframe {
		rl.DisableWireMode()
	}
	if inside {
		rl.EnableDepthMask()
		rl.EnableBackfaceCulling()
	}
	r.materials[mat] = *mtl
}

// bindStandard picks the chrome shader when the env map is ready, otherwise the lit shader,
// and uploads the per-frame uniforms.
func (r *Renderer) bindStandard(mtl *rl.Material, mat *scene.Material, hasMap bool, view [3]float32) {
	if env, ok := r.texture(mat.EnvMap); ok && rl.IsShaderValid(r.shaders.chrome) {
		mtl.Shader = r.shaders.chrome
		rl.SetMaterialTexture(mtl, rl.MapCubemap, env)
		r.shaders.setVec3(mtl.Shader, "viewPos", view)
		r.lights.apply(r.shaders, mtl.Shader)
		return
	}
	if !rl.IsShaderValid(r.shaders.standard) {
		mtl.Shader = r.shaders.basic
		return
	}
	mtl.Shader = r.shaders.standard
	normal, hasNormal := r.texture(mat.NormalMap)
	if hasNormal {
		rl.SetMaterialTexture(mtl, rl.MapNormal, normal)
	}
	sh := mtl.Shader
	r.shaders.setVec3(sh, "viewPos", view)
	r.shaders.setFloat(sh, "useMap", boolFloat(hasMap))
	r.shaders.setFloat(sh, "useNormalMap", boolFloat(hasNormal))
	r.shaders.setFloat(sh, "metalness", mat.Metalness)
	r.shaders.setFloat(sh, "roughness", mat.Roughness)
	r.lights.apply(r.shaders, sh)
}

func boolFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// Unload releases every GPU resource the renderer created. Call before the window closes.
func (r *Renderer) Unload() {
	for _, t := range r.textures {
		if rl.IsTextureValid(t.tex) {
			rl.UnloadTexture(t.tex)
		}
	}
	for g, m := range r.meshes {
		rl.UnloadMesh(&m)
		delete(r.meshes, g)
	}
	if r.shaders != nil {
		r.shaders.unload()
		r.shaders = nil
	}
	clear(r.textures)
	clear(r.materials)
}

// lightSet is the flattened light state uploaded to the lit shaders each frame.
type lightSet struct {
	count   int
	pos     [maxLights * 3]float32
	color   [maxLights * 3]float32
	rng     [maxLights]float32
	ambient [3]float32
}

// collect gathers point lights from the graph and the camera (camera children last) and sums ambient lights.
// Lights past maxLights are ignored.
func (l *lightSet) collect(s *scene.Scene) {
	*l = lightSet{}
	lights := s.Graph.Lights()
	lights = append(lights, s.Camera.Children...)
	for _, lt := range lights {
		c := scaled(lt.Color, lt.Intensity)
		switch lt.Kind {
		case scene.LightAmbient:
			l.ambient[0] += c[0]
			l.ambient[1] += c[1]
			l.ambient[2] += c[2]
		case scene.LightPoint:
			if l.count == maxLights {
				continue
			}
			i := l.count * 3
			l.pos[i], l.pos[i+1], l.pos[i+2] = lt.Position.X, lt.Position.Y, lt.Position.Z
			l.color[i], l.color[i+1], l.color[i+2] = c[0], c[1], c[2]
			l.rng[l.count] = lt.Distance
			l.count++
		}
	}
}

func scaled(c color.RGBA, intensity float32) [3]float32 {
	return [3]float32{
		float32(c.R) / 255 * intensity,
		float32(c.G) / 255 * intensity,
		float32(c.B) / 255 * intensity,
	}
}

func (l *lightSet) apply(s *shaderSet, sh rl.Shader) {
	s.setFloat(sh, "lightCount", float32(l.count))
	s.setVec3(sh, "ambient", l.ambient)
	if loc := s.loc(sh, "lightPos"); loc >= 0 {
		rl.SetShaderValueV(sh, loc, l.pos[:], rl.ShaderUniformVec3, maxLights)
	}
	if loc := s.loc(sh, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(sh, loc, l.color[:], rl.ShaderUniformVec3, maxLights)
	}
	if loc := s.loc(sh, "lightRange"); loc >= 0 {
		rl.SetShaderValueV(sh, loc, l.rng[:], rl.ShaderUniformFloat, maxLights)
	}
}
