// Package gemini wraps the Generative Language API for video transcription.
//
// Small videos travel inline (base64) in the generateContent request; larger
// ones go through the File API upload endpoint and are polled until the
// backend reports them ACTIVE. The client makes a single attempt per call;
// retry policy belongs to the caller.
package gemini
