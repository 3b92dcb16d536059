// Package sign provides optional Ed25519 signing and verification of
// PIP identity documents.
//
// Verification is not part of the ingestion pipeline; a caller that
// wants to trust a fetched document verifies it as a separate
// post-validation step:
//
//	identity, err := ing.Ingest(ctx, url)
//	...
//	if !sign.Verify(identity, sig, publicKey) {
//	    return errUntrusted
//	}
//
// The signed payload is the canonical JSON encoding of the document
// (encoding/json sorts object keys) with metadata.signature removed,
// so a document can carry its own signature.
package sign

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"maps"
)

// Payload returns the canonical bytes that are signed: the document
// with metadata.signature stripped, JSON-encoded with sorted keys.
func Payload(identity map[string]any) ([]byte, error) {
	doc := make(map[string]any, len(identity))
	maps.Copy(doc, identity)

	if metadata, ok := doc["metadata"].(map[string]any); ok {
		if _, present := metadata["signature"]; present {
			stripped := make(map[string]any, len(metadata))
			maps.Copy(stripped, metadata)
			delete(stripped, "signature")
			doc["metadata"] = stripped
		}
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding signing payload: %w", err)
	}
	return payload, nil
}

// Sign produces a base64-encoded Ed25519 signature over the document's
// canonical payload.
func Sign(identity map[string]any, key ed25519.PrivateKey) (string, error) {
	payload, err := Payload(identity)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ed25519.Sign(key, payload)), nil
}

// Verify reports whether signature (base64) is a valid Ed25519
// signature of the document's canonical payload under publicKey.
// Malformed input verifies as false, never panics.
func Verify(identity map[string]any, signature string, publicKey ed25519.PublicKey) bool {
	if len(publicKey) != ed25519.PublicKeySize {
		return false
	}

	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}

	payload, err := Payload(identity)
	if err != nil {
		return false
	}
	return ed25519.Verify(publicKey, payload, sig)
}

// VerifyEmbedded verifies a document against the signature it carries
// in metadata.signature. Documents without an embedded signature
// verify as false.
func VerifyEmbedded(identity map[string]any, publicKey ed25519.PublicKey) bool {
	metadata, ok := identity["metadata"].(map[string]any)
	if !ok {
		return false
	}
	signature, ok := metadata["signature"].(string)
	if !ok || signature == "" {
		return false
	}
	return Verify(identity, signature, publicKey)
}
