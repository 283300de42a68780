package podcast

import (
	"net/url"
	"strings"
)

// Artifact names a downloadable job output.
type Artifact string

const (
	ArtifactAudio    Artifact = "audio"
	ArtifactScript   Artifact = "script"
	ArtifactMetadata Artifact = "metadata"
)

// ParseArtifact maps a user-supplied name to an Artifact.
func ParseArtifact(name string) (Artifact, bool) {
	switch Artifact(strings.ToLower(strings.TrimSpace(name))) {
	case ArtifactAudio:
		return ArtifactAudio, true
	case ArtifactScript:
		return ArtifactScript, true
	case ArtifactMetadata:
		return ArtifactMetadata, true
	default:
		return "", false
	}
}

// FileName returns the conventional local file name for the artifact.
func (a Artifact) FileName(podcastID string) string {
	switch a {
	case ArtifactAudio:
		return podcastID + "_audio.mp3"
	case ArtifactScript:
		return podcastID + "_script.txt"
	case ArtifactMetadata:
		return podcastID + "_metadata.json"
	default:
		return podcastID + "_" + string(a)
	}
}

// AudioURL returns the direct download link for a job's audio.
func (c *Client) AudioURL(podcastID string) string {
	return c.endpoint("podcasts", "download", podcastID, string(ArtifactAudio))
}

// ScriptURL returns the direct download link for a job's script.
func (c *Client) ScriptURL(podcastID string) string {
	return c.endpoint("podcasts", "download", podcastID, string(ArtifactScript))
}

// ArtifactURL returns the direct download link for any artifact.
func (c *Client) ArtifactURL(podcastID string, artifact Artifact) string {
	return c.endpoint("podcasts", "download", podcastID, string(artifact))
}

// ResolvePath turns a service-relative path (such as a status audio_path) into
// an absolute URL. Absolute inputs are returned unchanged.
func (c *Client) ResolvePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if parsed, err := url.Parse(path); err == nil && parsed.IsAbs() {
		return path
	}
	return c.cfg.BaseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}
	return c.cfg.BaseURL + "/" + strings.Join(escaped, "/")
}
