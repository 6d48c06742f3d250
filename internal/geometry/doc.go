// Package geometry computes damper lengths from raw mount measurements.
//
// The calculator is a pure function of its inputs: the same table and
// settings always produce bit-identical lengths. Optional LCA Z-height
// normalization replaces each lower mount Z with the median Z of the
// configurations sharing that corner, removing survey noise that would
// otherwise make cross-configuration comparisons meaningless.
package geometry
