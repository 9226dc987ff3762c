// Package persons lists registered persons and reads single persons with their role resolved.
package persons
