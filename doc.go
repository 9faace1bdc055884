/*
Package trilog implements a backward-chaining propositional inference
engine over a small rule language whose atoms are single uppercase
letters.

Rules combine atoms with NOT, AND, OR and XOR on either side of an
implication (=>) or a biconditional (<=>). Given a set of rules, a set
of initial facts asserted true, and a list of query atoms, the engine
determines for each query whether it is true, false, or ambiguous
(underdetermined). Package structure is as follows:

■ engine: Fact, Node and Store, the shared mutable graph that parsing
builds and resolution walks.

■ engine/parser: turns rule/fact/query lines into mutations on a Store.

■ engine/resolve: the tri-valued backward-chaining resolver.

■ cli and cmd/trilog: an interactive REPL and command-line front end
built on top of the core packages. They are external consumers, not
part of the core.

The base package (this one) contains data types used throughout all
the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the
root folder of this module.

Copyright © 2026 trilog contributors

*/
package trilog
