/*
Package history models the provenance of symbolic stack values.

Every value on the analysed stack carries an Entry telling where it came
from: a literal push instruction, an opcode applied to other values, or an
implicit graphics-state default. Entries form a DAG, not a tree; interior
Op nodes reference the entries of their operands, and one entry may feed
many consumers. All entries are immutable and shared by pointer, never
deep-copied.

# Status

Stable.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package history
