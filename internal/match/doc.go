// Package match scores how alike two bone names are.
//
// Rigs rename bones freely: "mixamorig:LeftForeArm", "forearm_fk.L" and
// "ForeArm_FK_L" all name the same left forearm. Names are reduced to a key
// and a side before comparison:
//   - NormalizeBone drops namespaces, splits words and CamelCase, reads the
//     side and strips control tokens such as fk, ik and mch
//   - Levenshtein scores the keys
//   - Rank orders candidate bones for one name, best first
package match
