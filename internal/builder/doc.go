/*
Package builder is responsible for constructing the topic relationship graph.
It acts as the bridge between the topic records produced by a parser (or loaded
from an HCL document or a saved topic map) and the graph store that the anomaly
detectors read.

The graph construction is a multi-phase process:

 1. Validation: every topic is checked against its record contract before the
    store is touched. The first violation aborts the build, so a failed build
    never leaves a half-populated store behind.

 2. Reconciliation: a topic whose Parent names a known topic is appended to
    that parent's Children list when it is missing there.

 3. Node Creation: one node per topic, carrying its title, content and
    confidence.

 4. Linking: one hierarchical edge per topic with a Parent, then one edge per
    cross, forward and backward reference, all recorded with status valid.
    References to unknown topics are kept as dangling edges; finding them is
    the job of the broken-reference detector, not of the builder.

Children never produce edges. Parent is the authoritative source of the
hierarchy.
*/
package builder
