package render

import rl "github.com/gen2brain/raylib-go/raylib"

// maxLights must match MAX_LIGHTS in the fragment shaders.
const maxLights = 4

// litVS is shared by the standard and chrome shaders. Same vertex attributes as raylib meshes:
// vertexPosition, vertexTexCoord, vertexNormal, vertexTangent.
const litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec4 vertexTangent;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
out vec4 fragTangent;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  fragTangent = vec4(mat3(matModel) * vertexTangent.xyz, vertexTangent.w);
  gl_Position = matProjection * matView * worldPos;
}
`

// standardFS: point lights with linear-squared falloff plus ambient; optional albedo map (texture0)
// and tangent-space normal map (texture2).
const standardFS = `#version 330
#define MAX_LIGHTS 4
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
in vec4 fragTangent;
uniform sampler2D texture0;
uniform sampler2D texture2;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 ambient;
uniform float lightCount;
uniform vec3 lightPos[MAX_LIGHTS];
uniform vec3 lightColor[MAX_LIGHTS];
uniform float lightRange[MAX_LIGHTS];
uniform float useMap;
uniform float useNormalMap;
uniform float metalness;
uniform float roughness;
out vec4 finalColor;
void main() {
  vec4 base = colDiffuse;
  if (useMap > 0.5) {
    base *= texture(texture0, fragTexCoord);
  }
  vec3 N = normalize(fragNormal);
  if (useNormalMap > 0.5) {
    vec3 T = normalize(fragTangent.xyz - N * dot(N, fragTangent.xyz));
    vec3 B = cross(N, T) * (fragTangent.w < 0.0 ? -1.0 : 1.0);
    vec3 n = texture(texture2, fragTexCoord).rgb * 2.0 - 1.0;
    N = normalize(mat3(T, B, N) * n);
  }
  vec3 V = normalize(viewPos - fragPosition);
  float r = clamp(roughness, 0.0, 1.0);
  float shininess = mix(128.0, 4.0, r);
  float specStrength = 1.0 - 0.9 * r;
  vec3 diffuseBase = base.rgb * (1.0 - metalness);
  vec3 color = ambient * base.rgb;
  for (int i = 0; i < MAX_LIGHTS; i++) {
    if (float(i) >= lightCount) {
      break;
    }
    vec3 toLight = lightPos[i] - fragPosition;
    float dist = length(toLight);
    vec3 L = toLight / max(dist, 0.0001);
    float atten = 1.0;
    if (lightRange[i] > 0.0) {
      atten = clamp(1.0 - dist / lightRange[i], 0.0, 1.0);
      atten *= atten;
    }
    float NdotL = max(dot(N, L), 0.0);
    vec3 H = normalize(L + V);
    float spec = pow(max(dot(N, H), 0.0), shininess) * specStrength * (NdotL > 0.0 ? 1.0 : 0.0);
    color += (diffuseBase * NdotL + vec3(spec)) * lightColor[i] * atten;
  }
  finalColor = vec4(color, base.a);
}
`

// chromeFS: mirror reflection of the environment cubemap, tinted by colDiffuse, with light highlights.
const chromeFS = `#version 330
#define MAX_LIGHTS 4
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
in vec4 fragTangent;
uniform samplerCube environmentMap;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform float lightCount;
uniform vec3 lightPos[MAX_LIGHTS];
uniform vec3 lightColor[MAX_LIGHTS];
uniform float lightRange[MAX_LIGHTS];
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  vec3 R = reflect(-V, N);
  vec3 color = texture(environmentMap, R).rgb * colDiffuse.rgb;
  for (int i = 0; i < MAX_LIGHTS; i++) {
    if (float(i) >= lightCount) {
      break;
    }
    vec3 toLight = lightPos[i] - fragPosition;
    float dist = length(toLight);
    float atten = 1.0;
    if (lightRange[i] > 0.0) {
      atten = clamp(1.0 - dist / lightRange[i], 0.0, 1.0);
      atten *= atten;
    }
    vec3 L = toLight / max(dist, 0.0001);
    float spec = pow(max(dot(R, L), 0.0), 256.0);
    color += spec * lightColor[i] * atten;
  }
  finalColor = vec4(color, colDiffuse.a);
}
`

// Equirectangular skybox shader: samples a 2D panorama by direction from the sphere center.
const (
	equirectVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragWorldPos;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragWorldPos = worldPos.xyz;
  gl_Position = matProjection * matView * worldPos;
}
`
	equirectFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 origin;
void main() {
  vec3 dir = normalize(fragWorldPos - origin);
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  float u = lon / 6.28318530718 + 0.5;
  float v = 0.5 - lat / 3.14159265359;
  finalColor = texture(texture0, vec2(u, v)) * colDiffuse;
}
`
)

// shaderSet holds the programs the renderer switches between. Loaded on first Render, after the GL context exists.
type shaderSet struct {
	basic    rl.Shader // raylib default: texture0 * colDiffuse
	standard rl.Shader
	chrome   rl.Shader
	equirect rl.Shader
	locs     map[uint32]map[string]int32
}

func loadShaders() *shaderSet {
	def := rl.LoadMaterialDefault()
	s := &shaderSet{
		basic:    def.Shader,
		standard: rl.LoadShaderFromMemory(litVS, standardFS),
		chrome:   rl.LoadShaderFromMemory(litVS, chromeFS),
		equirect: rl.LoadShaderFromMemory(equirectVS, equirectFS),
		locs:     make(map[uint32]map[string]int32),
	}
	// Cubemaps are bound through the material's cubemap slot, so point that slot at the sampler.
	if rl.IsShaderValid(s.chrome) {
		s.chrome.UpdateLocation(rl.ShaderLocMapCubemap, rl.GetShaderLocation(s.chrome, "environmentMap"))
	}
	return s
}

// loc returns a cached uniform location (-1 when the shader has no such uniform).
func (s *shaderSet) loc(sh rl.Shader, name string) int32 {
	m, ok := s.locs[sh.ID]
	if !ok {
		m = make(map[string]int32)
		s.locs[sh.ID] = m
	}
	l, ok := m[name]
	if !ok {
		l = rl.GetShaderLocation(sh, name)
		m[name] = l
	}
	return l
}

func (s *shaderSet) setFloat(sh rl.Shader, name string, v float32) {
	if loc := s.loc(sh, name); loc >= 0 {
		rl.SetShaderValue(sh, loc, []float32{v}, rl.ShaderUniformFloat)
	}
}

func (s *shaderSet) setVec3(sh rl.Shader, name string, v [3]float32) {
	if loc := s.loc(sh, name); loc >= 0 {
		rl.SetShaderValueV(sh, loc, v[:], rl.ShaderUniformVec3, 1)
	}
}

func (s *shaderSet) unload() {
	for _, sh := range []rl.Shader{s.standard, s.chrome, s.equirect} {
		if rl.IsShaderValid(sh) {
			rl.UnloadShader(sh)
		}
	}
}
