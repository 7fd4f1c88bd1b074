/*
Package triple implements the symbolic value domain of the hint analyser.

Abstract interpretation of hinting bytecode never works with one concrete
number; a stack slot holds the set of all values that could reach it. This
package represents such sets compactly as arithmetic progressions (Triple)
and coalesced unions of progressions with a fixed-point basis (Collection),
and provides a closed, total algebra over them: arithmetic, absolute value,
bitwise xor, comparisons, minimum/maximum and basis rescaling.

Operations never fail. Where a closed-form result does not exist (open-ended
multiplication, divisions that break progression alignment) the result is a
superset of the true value set, which keeps the analysis sound. Range
checking and error policy belong to the opcode handlers, one layer up.

# Status

Stable.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package triple
