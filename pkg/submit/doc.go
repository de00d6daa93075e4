// Package submit defines the hook invoked with the final answers. No network
// transport ships with it; Nop only logs what would have been sent.
package submit
