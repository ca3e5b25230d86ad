// Package storage abstracts where uploaded bytes live. The default store
// writes to local directories, the s3 store keeps objects in a bucket and
// serves them through redirects
package storage

// Kind separates the two object namespaces a store manages
type Kind string

const (
	Profile    Kind = "profile"
	Attachment Kind = "attachment"
)

type FileStore interface {
	// Save writes data under a freshly generated name with the given
	// extension (may be empty) and returns the name
	Save(kind Kind, data []byte, ext string) (string, error)

	// Delete removes a stored object. Deleting a missing object is an error
	// for profile images (callers track their existence) and ignored for
	// attachments
	Delete(kind Kind, name string) error

	// Path returns the on-disk location of an object when the store serves
	// from the local filesystem
	Path(kind Kind, name string) (string, bool)

	// URL returns the public location of an object when the store serves
	// through a CDN or bucket endpoint
	URL(kind Kind, name string) (string, bool)
}
