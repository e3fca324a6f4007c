// Package whisper wraps the whisper-ctranslate2 CLI behind a narrow
// transcription interface: (media path, model, language hint) in, ordered
// timed segments out. The command runner is injectable so batch logic can be
// tested without the real model.
package whisper
