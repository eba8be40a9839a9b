package models

// Record is one SOP row exactly as the store returned it. The schema is
// open-ended; only the audio reference field means anything to the gateway.
type Record map[string]any

const (
	FieldAudioURL       = "audio_url"
	FieldSignedAudioURL = "signed_audio_url"
)

// AudioURL returns the record's asset reference, or "" when the record
// carries none (missing, null or non-string).
func (r Record) AudioURL() string {
	v, ok := r[FieldAudioURL]
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
